package types

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types for moonpool module
const (
	TypeMsgBootstrap     = "bootstrap"
	TypeMsgCreatePool    = "create_pool"
	TypeMsgMintPoolToken = "mint_pool_token"
	TypeMsgContribute    = "contribute"
	TypeMsgAddAsset      = "add_asset"
	TypeMsgBuy           = "buy"
	TypeMsgSell          = "sell"
)

// MsgServer defines the moonpool module's message service
type MsgServer interface {
	Bootstrap(context.Context, *MsgBootstrap) (*MsgBootstrapResponse, error)
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	MintPoolToken(context.Context, *MsgMintPoolToken) (*MsgMintPoolTokenResponse, error)
	Contribute(context.Context, *MsgContribute) (*MsgContributeResponse, error)
	AddAsset(context.Context, *MsgAddAsset) (*MsgAddAssetResponse, error)
	Buy(context.Context, *MsgBuy) (*MsgBuyResponse, error)
	Sell(context.Context, *MsgSell) (*MsgSellResponse, error)
}

func validateSigner(addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errorsmod.Wrapf(ErrInvalidAccount, "invalid address %q: %s", addr, err)
	}
	return nil
}

func mustSigner(addr string) []sdk.AccAddress {
	signer, _ := sdk.AccAddressFromBech32(addr)
	return []sdk.AccAddress{signer}
}

// ============ MsgBootstrap ============

// MsgBootstrap creates the registry and fee vault singletons
type MsgBootstrap struct {
	Admin string `json:"admin"`
}

func (msg *MsgBootstrap) Reset()         { *msg = MsgBootstrap{} }
func (msg *MsgBootstrap) String() string { return msg.Admin }
func (msg *MsgBootstrap) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgBootstrap
func (msg *MsgBootstrap) XXX_MessageName() string { return "moonpool.v1.MsgBootstrap" }

func (msg MsgBootstrap) Route() string { return RouterKey }
func (msg MsgBootstrap) Type() string  { return TypeMsgBootstrap }

// ValidateBasic for MsgBootstrap
func (msg *MsgBootstrap) ValidateBasic() error { return validateSigner(msg.Admin) }

// GetSigners returns the signer addresses for MsgBootstrap
func (msg *MsgBootstrap) GetSigners() []sdk.AccAddress { return mustSigner(msg.Admin) }

// MsgBootstrapResponse is the response for MsgBootstrap
type MsgBootstrapResponse struct {
	FeeVault string `json:"fee_vault"`
}

func (msg *MsgBootstrapResponse) Reset()         { *msg = MsgBootstrapResponse{} }
func (msg *MsgBootstrapResponse) String() string { return msg.FeeVault }
func (msg *MsgBootstrapResponse) ProtoMessage()  {}

// ============ MsgCreatePool ============

// MsgCreatePool opens a new pool owned by the signer
type MsgCreatePool struct {
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	RaiseGoal uint64 `json:"raise_goal"`
}

func (msg *MsgCreatePool) Reset()         { *msg = MsgCreatePool{} }
func (msg *MsgCreatePool) String() string { return msg.Owner + "/" + msg.Name }
func (msg *MsgCreatePool) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgCreatePool
func (msg *MsgCreatePool) XXX_MessageName() string { return "moonpool.v1.MsgCreatePool" }

func (msg MsgCreatePool) Route() string { return RouterKey }
func (msg MsgCreatePool) Type() string  { return TypeMsgCreatePool }

// ValidateBasic for MsgCreatePool
func (msg *MsgCreatePool) ValidateBasic() error {
	if err := validateSigner(msg.Owner); err != nil {
		return err
	}
	if err := ValidatePoolName(msg.Name); err != nil {
		return err
	}
	if err := ValidateSymbol(msg.Symbol); err != nil {
		return err
	}
	if msg.RaiseGoal == 0 {
		return errorsmod.Wrap(ErrInvalidAmount, "raise goal must be positive")
	}
	return nil
}

// GetSigners returns the signer addresses for MsgCreatePool
func (msg *MsgCreatePool) GetSigners() []sdk.AccAddress { return mustSigner(msg.Owner) }

// MsgCreatePoolResponse is the response for MsgCreatePool
type MsgCreatePoolResponse struct {
	Pool string `json:"pool"`
}

func (msg *MsgCreatePoolResponse) Reset()         { *msg = MsgCreatePoolResponse{} }
func (msg *MsgCreatePoolResponse) String() string { return msg.Pool }
func (msg *MsgCreatePoolResponse) ProtoMessage()  {}

// ============ MsgMintPoolToken ============

// MsgMintPoolToken creates the pool's issuance token and activates the pool
type MsgMintPoolToken struct {
	Owner string `json:"owner"`
	Pool  string `json:"pool"`
	// MetadataHash is the content address of the published metadata document
	MetadataHash string `json:"metadata_hash"`
}

func (msg *MsgMintPoolToken) Reset()         { *msg = MsgMintPoolToken{} }
func (msg *MsgMintPoolToken) String() string { return msg.Pool }
func (msg *MsgMintPoolToken) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgMintPoolToken
func (msg *MsgMintPoolToken) XXX_MessageName() string { return "moonpool.v1.MsgMintPoolToken" }

func (msg MsgMintPoolToken) Route() string { return RouterKey }
func (msg MsgMintPoolToken) Type() string  { return TypeMsgMintPoolToken }

// ValidateBasic for MsgMintPoolToken
func (msg *MsgMintPoolToken) ValidateBasic() error {
	if err := validateSigner(msg.Owner); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Pool); err != nil {
		return errorsmod.Wrapf(ErrPoolNotFound, "invalid pool address %q", msg.Pool)
	}
	if msg.MetadataHash == "" {
		return errorsmod.Wrap(ErrInvalidMetadataURI, "metadata hash is required")
	}
	return nil
}

// GetSigners returns the signer addresses for MsgMintPoolToken
func (msg *MsgMintPoolToken) GetSigners() []sdk.AccAddress { return mustSigner(msg.Owner) }

// MsgMintPoolTokenResponse is the response for MsgMintPoolToken
type MsgMintPoolTokenResponse struct {
	Denom string `json:"denom"`
	URI   string `json:"uri"`
}

func (msg *MsgMintPoolTokenResponse) Reset()         { *msg = MsgMintPoolTokenResponse{} }
func (msg *MsgMintPoolTokenResponse) String() string { return msg.Denom }
func (msg *MsgMintPoolTokenResponse) ProtoMessage()  {}

// ============ MsgContribute ============

// MsgContribute contributes quote units to a raising pool
type MsgContribute struct {
	Contributor string `json:"contributor"`
	Pool        string `json:"pool"`
	Amount      uint64 `json:"amount"`
}

func (msg *MsgContribute) Reset()         { *msg = MsgContribute{} }
func (msg *MsgContribute) String() string { return msg.Contributor + "->" + msg.Pool }
func (msg *MsgContribute) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgContribute
func (msg *MsgContribute) XXX_MessageName() string { return "moonpool.v1.MsgContribute" }

func (msg MsgContribute) Route() string { return RouterKey }
func (msg MsgContribute) Type() string  { return TypeMsgContribute }

// ValidateBasic for MsgContribute
func (msg *MsgContribute) ValidateBasic() error {
	return validateAmountMsg(msg.Contributor, msg.Pool, msg.Amount)
}

// GetSigners returns the signer addresses for MsgContribute
func (msg *MsgContribute) GetSigners() []sdk.AccAddress { return mustSigner(msg.Contributor) }

// MsgContributeResponse is the response for MsgContribute
type MsgContributeResponse struct {
	Minted uint64 `json:"minted"`
}

func (msg *MsgContributeResponse) Reset()         { *msg = MsgContributeResponse{} }
func (msg *MsgContributeResponse) String() string { return strconv.FormatUint(msg.Minted, 10) }
func (msg *MsgContributeResponse) ProtoMessage()  {}

// ============ MsgAddAsset ============

// MsgAddAsset attaches a collateral type to a pool and deposits into it
type MsgAddAsset struct {
	Owner  string `json:"owner"`
	Pool   string `json:"pool"`
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

func (msg *MsgAddAsset) Reset()         { *msg = MsgAddAsset{} }
func (msg *MsgAddAsset) String() string { return msg.Pool + "/" + msg.Denom }
func (msg *MsgAddAsset) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgAddAsset
func (msg *MsgAddAsset) XXX_MessageName() string { return "moonpool.v1.MsgAddAsset" }

func (msg MsgAddAsset) Route() string { return RouterKey }
func (msg MsgAddAsset) Type() string  { return TypeMsgAddAsset }

// ValidateBasic for MsgAddAsset
func (msg *MsgAddAsset) ValidateBasic() error {
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return errorsmod.Wrapf(ErrInvalidMint, "invalid denom %q: %s", msg.Denom, err)
	}
	return validateAmountMsg(msg.Owner, msg.Pool, msg.Amount)
}

// GetSigners returns the signer addresses for MsgAddAsset
func (msg *MsgAddAsset) GetSigners() []sdk.AccAddress { return mustSigner(msg.Owner) }

// MsgAddAssetResponse is the response for MsgAddAsset
type MsgAddAssetResponse struct {
	Vault string `json:"vault"`
}

func (msg *MsgAddAssetResponse) Reset()         { *msg = MsgAddAssetResponse{} }
func (msg *MsgAddAssetResponse) String() string { return msg.Vault }
func (msg *MsgAddAssetResponse) ProtoMessage()  {}

// ============ MsgBuy ============

// MsgBuy buys issuance tokens from the curve
type MsgBuy struct {
	Buyer  string `json:"buyer"`
	Pool   string `json:"pool"`
	Amount uint64 `json:"amount"`
}

func (msg *MsgBuy) Reset()         { *msg = MsgBuy{} }
func (msg *MsgBuy) String() string { return msg.Buyer + "->" + msg.Pool }
func (msg *MsgBuy) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgBuy
func (msg *MsgBuy) XXX_MessageName() string { return "moonpool.v1.MsgBuy" }

func (msg MsgBuy) Route() string { return RouterKey }
func (msg MsgBuy) Type() string  { return TypeMsgBuy }

// ValidateBasic for MsgBuy
func (msg *MsgBuy) ValidateBasic() error {
	return validateAmountMsg(msg.Buyer, msg.Pool, msg.Amount)
}

// GetSigners returns the signer addresses for MsgBuy
func (msg *MsgBuy) GetSigners() []sdk.AccAddress { return mustSigner(msg.Buyer) }

// MsgBuyResponse is the response for MsgBuy
type MsgBuyResponse struct {
	Cost uint64 `json:"cost"`
}

func (msg *MsgBuyResponse) Reset()         { *msg = MsgBuyResponse{} }
func (msg *MsgBuyResponse) String() string { return strconv.FormatUint(msg.Cost, 10) }
func (msg *MsgBuyResponse) ProtoMessage()  {}

// ============ MsgSell ============

// MsgSell sells issuance tokens back to the curve
type MsgSell struct {
	Seller string `json:"seller"`
	Pool   string `json:"pool"`
	Amount uint64 `json:"amount"`
}

func (msg *MsgSell) Reset()         { *msg = MsgSell{} }
func (msg *MsgSell) String() string { return msg.Seller + "->" + msg.Pool }
func (msg *MsgSell) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgSell
func (msg *MsgSell) XXX_MessageName() string { return "moonpool.v1.MsgSell" }

func (msg MsgSell) Route() string { return RouterKey }
func (msg MsgSell) Type() string  { return TypeMsgSell }

// ValidateBasic for MsgSell
func (msg *MsgSell) ValidateBasic() error {
	return validateAmountMsg(msg.Seller, msg.Pool, msg.Amount)
}

// GetSigners returns the signer addresses for MsgSell
func (msg *MsgSell) GetSigners() []sdk.AccAddress { return mustSigner(msg.Seller) }

// MsgSellResponse is the response for MsgSell
type MsgSellResponse struct {
	Proceeds uint64 `json:"proceeds"`
}

func (msg *MsgSellResponse) Reset()         { *msg = MsgSellResponse{} }
func (msg *MsgSellResponse) String() string { return strconv.FormatUint(msg.Proceeds, 10) }
func (msg *MsgSellResponse) ProtoMessage()  {}

func validateAmountMsg(signer, pool string, amount uint64) error {
	if err := validateSigner(signer); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(pool); err != nil {
		return errorsmod.Wrapf(ErrPoolNotFound, "invalid pool address %q", pool)
	}
	if amount == 0 {
		return errorsmod.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	return nil
}
