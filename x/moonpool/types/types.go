package types

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolPhase is the lifecycle phase of a pool at a given instant
type PoolPhase int

const (
	PoolPhaseCreated PoolPhase = iota
	PoolPhaseRaising
	PoolPhaseTrading
	PoolPhaseMatured
)

func (p PoolPhase) String() string {
	switch p {
	case PoolPhaseCreated:
		return "created"
	case PoolPhaseRaising:
		return "raising"
	case PoolPhaseTrading:
		return "trading"
	case PoolPhaseMatured:
		return "matured"
	default:
		return "unknown"
	}
}

// Registry is the singleton program registry
type Registry struct {
	Admin     string `json:"admin"`
	PoolCount uint64 `json:"pool_count"`
}

// FeeVault is the singleton platform fee vault
type FeeVault struct {
	Admin   string `json:"admin"`
	Address string `json:"address"`
}

// Pool is a fundraising and bonding-curve trading pool
type Pool struct {
	Address           string `json:"address"`
	Owner             string `json:"owner"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	URI               string `json:"uri"`
	TokenDenom        string `json:"token_denom"`
	QuoteDenom        string `json:"quote_denom"`
	QuoteVault        string `json:"quote_vault"`
	CirculatingSupply uint64 `json:"circulating_supply"`
	ReservedLiquidity uint64 `json:"reserved_liquidity"`
	RaiseGoal         uint64 `json:"raise_goal"`
	TotalRaised       uint64 `json:"total_raised"`
	RaisePeriodEnd    int64  `json:"raise_period_end"`
	MaturityDate      int64  `json:"maturity_date"`
	IsInitialized     bool   `json:"is_initialized"`
	DerivationBump    uint8  `json:"derivation_bump"`
	CreatedAt         int64  `json:"created_at"`
}

// NewPool creates a pool record with its derived addresses and windows
func NewPool(owner sdk.AccAddress, name, symbol string, raiseGoal uint64, quoteDenom string, now time.Time) *Pool {
	addr := PoolAddress(owner, name)
	return &Pool{
		Address:        addr.String(),
		Owner:          owner.String(),
		Name:           name,
		Symbol:         symbol,
		QuoteDenom:     quoteDenom,
		QuoteVault:     QuoteVaultAddress(addr).String(),
		RaiseGoal:      raiseGoal,
		RaisePeriodEnd: now.Add(RaisePeriod).Unix(),
		MaturityDate:   now.Add(MaturityPeriod).Unix(),
		DerivationBump: CanonicalBump,
		CreatedAt:      now.Unix(),
	}
}

// Phase reports the lifecycle phase at now (unix seconds).
// Window boundaries are inclusive: the raise runs through RaisePeriodEnd
// and trading through MaturityDate.
func (p *Pool) Phase(now int64) PoolPhase {
	switch {
	case now > p.MaturityDate:
		return PoolPhaseMatured
	case !p.IsInitialized:
		return PoolPhaseCreated
	case now <= p.RaisePeriodEnd:
		return PoolPhaseRaising
	default:
		return PoolPhaseTrading
	}
}

// GetAddress returns the pool account address
func (p *Pool) GetAddress() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(p.Address)
}

// GetOwner returns the owner account address
func (p *Pool) GetOwner() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(p.Owner)
}

// GetQuoteVault returns the quote vault account address
func (p *Pool) GetQuoteVault() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(p.QuoteVault)
}

// Validate checks the stored invariants of a pool record
func (p *Pool) Validate() error {
	owner, err := sdk.AccAddressFromBech32(p.Owner)
	if err != nil {
		return fmt.Errorf("pool %s: invalid owner: %w", p.Address, err)
	}
	if err := ValidatePoolName(p.Name); err != nil {
		return err
	}
	if got := PoolAddress(owner, p.Name).String(); got != p.Address {
		return fmt.Errorf("pool %s: address does not match derivation %s", p.Address, got)
	}
	if p.MaturityDate < p.RaisePeriodEnd {
		return fmt.Errorf("pool %s: %w", p.Address, ErrInvalidMaturity)
	}
	if p.CirculatingSupply > MaxDropletSupply {
		return fmt.Errorf("pool %s: %w", p.Address, ErrExceedsMaximumSupply)
	}
	if p.IsInitialized && p.TokenDenom == "" {
		return fmt.Errorf("pool %s: initialized without issuance token", p.Address)
	}
	return nil
}

// CollateralAsset records a collateral type attached to a pool
type CollateralAsset struct {
	Pool   string `json:"pool"`
	Denom  string `json:"denom"`
	Vault  string `json:"vault"`
	Amount uint64 `json:"amount"`
}

// Member is reserved schema for per-user pool membership
type Member struct {
	Pool        string `json:"pool"`
	Member      string `json:"member"`
	Balance     uint64 `json:"balance"`
	CreatedAt   int64  `json:"created_at"`
	LastUpdated int64  `json:"last_updated"`
}

// Transaction is reserved schema for a pool activity log
type Transaction struct {
	Pool      string `json:"pool"`
	Member    string `json:"member"`
	Kind      string `json:"kind"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// ContributionResult summarizes a contribution
type ContributionResult struct {
	Pool        string `json:"pool"`
	Contributor string `json:"contributor"`
	Amount      uint64 `json:"amount"`
	PlatformFee uint64 `json:"platform_fee"`
	Minted      uint64 `json:"minted"`
	TotalRaised uint64 `json:"total_raised"`
	Supply      uint64 `json:"supply"`
}

// TradeResult summarizes a buy or sell
type TradeResult struct {
	Pool        string `json:"pool"`
	Trader      string `json:"trader"`
	Amount      uint64 `json:"amount"`
	Value       uint64 `json:"value"`
	OwnerFee    uint64 `json:"owner_fee"`
	PlatformFee uint64 `json:"platform_fee"`
	Supply      uint64 `json:"supply"`
}

// Quote is a priced buy or sell for display
type Quote struct {
	Supply      uint64 `json:"supply"`
	Amount      uint64 `json:"amount"`
	Value       uint64 `json:"value"`
	OwnerFee    uint64 `json:"owner_fee"`
	PlatformFee uint64 `json:"platform_fee"`
	SpotPrice   uint64 `json:"spot_price"`
}

// ValidatePoolName enforces 1..MaxPoolNameLength characters
func ValidatePoolName(name string) error {
	if len(name) == 0 || len(name) > MaxPoolNameLength {
		return ErrInvalidPoolName
	}
	return nil
}

// ValidateSymbol enforces at most MaxSymbolLength characters. An empty
// ticker is allowed.
func ValidateSymbol(symbol string) error {
	if len(symbol) > MaxSymbolLength {
		return ErrInvalidSymbol
	}
	return nil
}

// ValidateMetadataURI bounds the stored metadata pointer
func ValidateMetadataURI(uri string) error {
	if uri == "" || len(uri) > MaxMetadataURILength {
		return ErrInvalidMetadataURI
	}
	return nil
}
