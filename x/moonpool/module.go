package moonpool

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/spf13/cobra"

	"github.com/openalpha/moonpool/x/moonpool/client/cli"
	"github.com/openalpha/moonpool/x/moonpool/keeper"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for moonpool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec is a no-op: moonpool messages are served in
// process by keeper.MsgServer and never travel in transactions.
func (AppModuleBasic) RegisterLegacyAminoCodec(*codec.LegacyAmino) {}

// RegisterInterfaces is a no-op for the same reason.
func (AppModuleBasic) RegisterInterfaces(cdctypes.InterfaceRegistry) {}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(err)
	}
	return bz
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	gs, err := types.ParseGenesis(bz)
	if err != nil {
		return err
	}
	return gs.Validate()
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module.
// Queries are served from raw store keys, see client/cli.
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {}

// GetQueryCmd returns the root query command for the module
func (AppModuleBasic) GetQueryCmd() *cobra.Command {
	return cli.GetQueryCmd()
}

// AppModule implements an application module for the moonpool module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// InitGenesis loads the module genesis from raw JSON
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	gs, err := types.ParseGenesis(bz)
	if err != nil {
		return err
	}
	return am.keeper.InitGenesis(ctx, gs)
}

// ExportGenesis exports the module state as raw JSON
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	bz, err := json.Marshal(am.keeper.ExportGenesis(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s genesis: %w", ModuleName, err)
	}
	return bz, nil
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}

// EndBlocker is called at the end of each block to refresh pool gauges
func (am AppModule) EndBlocker(ctx sdk.Context) error {
	am.keeper.EndBlocker(ctx)
	return nil
}
