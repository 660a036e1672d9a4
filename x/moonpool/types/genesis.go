package types

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState is the moonpool genesis state
type GenesisState struct {
	Params Params `json:"params"`

	// Admin, when set, bootstraps the registry and fee vault at genesis
	Admin    string            `json:"admin,omitempty"`
	Registry *Registry         `json:"registry,omitempty"`
	FeeVault *FeeVault         `json:"fee_vault,omitempty"`
	Pools    []Pool            `json:"pools"`
	Assets   []CollateralAsset `json:"assets"`
}

// DefaultGenesis returns an empty genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
		Assets: []CollateralAsset{},
	}
}

// ParseGenesis decodes raw genesis JSON, falling back to the default
func ParseGenesis(bz json.RawMessage) (*GenesisState, error) {
	gs := DefaultGenesis()
	if len(bz) == 0 {
		return gs, nil
	}
	if err := json.Unmarshal(bz, gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", ModuleName, err)
	}
	return gs, nil
}

// Validate performs basic genesis state validation
func (gs *GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if gs.Admin != "" {
		if _, err := sdk.AccAddressFromBech32(gs.Admin); err != nil {
			return fmt.Errorf("invalid genesis admin: %w", err)
		}
		if gs.Registry != nil {
			return fmt.Errorf("genesis admin and registry are mutually exclusive")
		}
	}
	if (gs.Registry == nil) != (gs.FeeVault == nil) {
		return fmt.Errorf("registry and fee vault must be exported together")
	}
	if gs.FeeVault != nil && gs.FeeVault.Address != FeeVaultAddress().String() {
		return fmt.Errorf("fee vault address %s does not match derivation", gs.FeeVault.Address)
	}

	pools := make(map[string]bool, len(gs.Pools))
	for i := range gs.Pools {
		p := &gs.Pools[i]
		if pools[p.Address] {
			return fmt.Errorf("duplicate pool %s", p.Address)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		pools[p.Address] = true
	}
	if len(gs.Pools) > 0 && gs.Registry == nil && gs.Admin == "" {
		return fmt.Errorf("pools require a bootstrapped registry")
	}
	if gs.Registry != nil && gs.Registry.PoolCount != uint64(len(gs.Pools)) {
		return fmt.Errorf("registry pool count %d does not match %d pools", gs.Registry.PoolCount, len(gs.Pools))
	}

	assets := make(map[string]bool, len(gs.Assets))
	for _, a := range gs.Assets {
		if !pools[a.Pool] {
			return fmt.Errorf("asset %s references unknown pool %s", a.Denom, a.Pool)
		}
		key := a.Pool + "/" + a.Denom
		if assets[key] {
			return fmt.Errorf("duplicate asset %s", key)
		}
		assets[key] = true
	}
	return nil
}
