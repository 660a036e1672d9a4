package app

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtcrypto "github.com/cometbft/cometbft/proto/tendermint/crypto"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/grpc/cmtservice"
	nodeservice "github.com/cosmos/cosmos-sdk/client/grpc/node"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/server/api"
	"github.com/cosmos/cosmos-sdk/server/config"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/x/auth"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/bank"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/cosmos-sdk/x/consensus"
	consensusparamkeeper "github.com/cosmos/cosmos-sdk/x/consensus/keeper"
	consensusparamtypes "github.com/cosmos/cosmos-sdk/x/consensus/types"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	genutiltypes "github.com/cosmos/cosmos-sdk/x/genutil/types"
	"github.com/cosmos/cosmos-sdk/x/staking"
	gogoprotograpc "github.com/cosmos/gogoproto/grpc"

	"github.com/openalpha/moonpool/x/moonpool"
	moonpoolkeeper "github.com/openalpha/moonpool/x/moonpool/keeper"
	moonpooltypes "github.com/openalpha/moonpool/x/moonpool/types"
)

const (
	Name = "moonpool"

	endBlockWarnThreshold = 100 * time.Millisecond
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// ModuleBasics defines the module BasicManager used for codec registration
	ModuleBasics = module.NewBasicManager(
		auth.AppModuleBasic{},
		bank.AppModuleBasic{},
		staking.AppModuleBasic{},
		genutil.NewAppModuleBasic(genutiltypes.DefaultMessageValidator),
		consensus.AppModuleBasic{},
		moonpool.AppModuleBasic{},
	)
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".moonpool")
}

// App extends an ABCI application
type App struct {
	*baseapp.BaseApp

	legacyAmino       *codec.LegacyAmino
	appCodec          codec.Codec
	interfaceRegistry codectypes.InterfaceRegistry
	txConfig          client.TxConfig

	keys map[string]*storetypes.KVStoreKey

	// SDK Keepers
	ConsensusParamsKeeper consensusparamkeeper.Keeper
	AccountKeeper         authkeeper.AccountKeeper
	BankKeeper            bankkeeper.BaseKeeper

	MoonpoolKeeper *moonpoolkeeper.Keeper

	// MoonpoolMsgServer and MoonpoolQueryServer are the in-process entry
	// points for moonpool. The module has no transaction messages.
	MoonpoolMsgServer   moonpooltypes.MsgServer
	MoonpoolQueryServer *moonpoolkeeper.QueryServer
	moonpoolModule      moonpool.AppModule

	// Module Manager
	BasicModuleManager module.BasicManager
}

// NewApp returns a new App instance
func NewApp(
	logger log.Logger,
	db dbm.DB,
	traceStore io.Writer,
	loadLatest bool,
	appOpts servertypes.AppOptions,
	baseAppOptions ...func(*baseapp.BaseApp),
) *App {
	encodingConfig := MakeEncodingConfig()
	appCodec := encodingConfig.Codec
	legacyAmino := encodingConfig.Amino
	interfaceRegistry := encodingConfig.InterfaceRegistry

	bApp := baseapp.NewBaseApp(Name, logger, db, encodingConfig.TxConfig.TxDecoder(), baseAppOptions...)
	bApp.SetCommitMultiStoreTracer(traceStore)
	bApp.SetInterfaceRegistry(interfaceRegistry)

	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		moonpooltypes.StoreKey,
		consensusparamtypes.StoreKey,
	)

	app := &App{
		BaseApp:            bApp,
		legacyAmino:        legacyAmino,
		appCodec:           appCodec,
		interfaceRegistry:  interfaceRegistry,
		txConfig:           encodingConfig.TxConfig,
		keys:               keys,
		BasicModuleManager: ModuleBasics,
	}

	authority := authtypes.NewModuleAddress("gov").String()

	app.ConsensusParamsKeeper = consensusparamkeeper.NewKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[consensusparamtypes.StoreKey]),
		authority,
		runtime.EventService{},
	)
	bApp.SetParamStore(app.ConsensusParamsKeeper.ParamsStore)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		moonpooltypes.ModuleName:   {authtypes.Minter, authtypes.Burner},
	}

	addrCodec := address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())

	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addrCodec,
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority,
	)

	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AccountKeeper,
		BlockedModuleAccountAddrs(maccPerms),
		authority,
		logger,
	)

	app.MoonpoolKeeper = moonpoolkeeper.NewKeeper(
		appCodec,
		keys[moonpooltypes.StoreKey],
		app.AccountKeeper,
		app.BankKeeper,
		authority,
		logger,
	)

	app.MoonpoolMsgServer = moonpoolkeeper.NewMsgServerImpl(app.MoonpoolKeeper)
	app.MoonpoolQueryServer = moonpoolkeeper.NewQueryServerImpl(app.MoonpoolKeeper)
	app.moonpoolModule = moonpool.NewAppModule(app.MoonpoolKeeper)

	authtypes.RegisterQueryServer(bApp.GRPCQueryRouter(), authkeeper.NewQueryServer(app.AccountKeeper))
	banktypes.RegisterQueryServer(bApp.GRPCQueryRouter(), bankkeeper.NewQuerier(&app.BankKeeper))

	app.MountKVStores(keys)

	app.SetInitChainer(app.InitChainer)
	app.SetBeginBlocker(app.BeginBlocker)
	app.SetEndBlocker(app.EndBlocker)

	if loadLatest {
		if err := app.LoadLatestVersion(); err != nil {
			panic(err)
		}
	}

	return app
}

// Name returns the name of the App
func (app *App) Name() string { return app.BaseApp.Name() }

// BeginBlocker executes begin block logic
func (app *App) BeginBlocker(ctx sdk.Context) (sdk.BeginBlock, error) {
	return sdk.BeginBlock{}, nil
}

// EndBlocker refreshes moonpool gauges and logs slow blocks
func (app *App) EndBlocker(ctx sdk.Context) (sdk.EndBlock, error) {
	start := time.Now()

	if err := app.moonpoolModule.EndBlocker(ctx); err != nil {
		return sdk.EndBlock{}, err
	}

	if elapsed := time.Since(start); elapsed > endBlockWarnThreshold {
		app.Logger().Warn("EndBlocker exceeded latency threshold",
			"block", ctx.BlockHeight(),
			"duration_ms", elapsed.Milliseconds(),
			"threshold_ms", endBlockWarnThreshold.Milliseconds(),
		)
	}

	return sdk.EndBlock{}, nil
}

// StakingGenesisState represents the staking module's genesis state
type StakingGenesisState struct {
	Validators []struct {
		ConsensusPubkey struct {
			Type string `json:"@type"`
			Key  string `json:"key"`
		} `json:"consensus_pubkey"`
		Tokens string `json:"tokens"`
		Status string `json:"status"`
	} `json:"validators"`
}

// GenutilGenesisState represents the genutil module's genesis state
type GenutilGenesisState struct {
	GenTxs []json.RawMessage `json:"gen_txs"`
}

// GenTx represents a genesis transaction
type GenTx struct {
	Body struct {
		Messages []json.RawMessage `json:"messages"`
	} `json:"body"`
}

// MsgCreateValidator represents the create validator message
type MsgCreateValidator struct {
	Type   string `json:"@type"`
	Pubkey struct {
		Type string `json:"@type"`
		Key  string `json:"key"`
	} `json:"pubkey"`
}

// InitChainer loads auth, bank and moonpool genesis and picks the
// validator set
func (app *App) InitChainer(ctx sdk.Context, req *abci.RequestInitChain) (*abci.ResponseInitChain, error) {
	var genesisState map[string]json.RawMessage
	if err := json.Unmarshal(req.AppStateBytes, &genesisState); err != nil {
		return nil, err
	}

	if err := app.initModuleGenesis(ctx, genesisState); err != nil {
		return nil, err
	}

	if len(req.Validators) > 0 {
		return &abci.ResponseInitChain{Validators: req.Validators}, nil
	}

	validators := stakingValidators(genesisState)
	if len(validators) == 0 {
		validators = gentxValidators(genesisState)
	}

	return &abci.ResponseInitChain{Validators: validators}, nil
}

func (app *App) initModuleGenesis(ctx sdk.Context, genesisState map[string]json.RawMessage) error {
	authGen := authtypes.DefaultGenesisState()
	if raw, ok := genesisState[authtypes.ModuleName]; ok {
		if err := app.appCodec.UnmarshalJSON(raw, authGen); err != nil {
			return fmt.Errorf("auth genesis: %w", err)
		}
	}
	app.AccountKeeper.InitGenesis(ctx, *authGen)

	bankGen := banktypes.DefaultGenesisState()
	if raw, ok := genesisState[banktypes.ModuleName]; ok {
		if err := app.appCodec.UnmarshalJSON(raw, bankGen); err != nil {
			return fmt.Errorf("bank genesis: %w", err)
		}
	}
	app.BankKeeper.InitGenesis(ctx, bankGen)

	raw := genesisState[moonpooltypes.ModuleName]
	if len(raw) == 0 {
		raw = app.moonpoolModule.DefaultGenesis(app.appCodec)
	}
	return app.moonpoolModule.InitGenesis(ctx, raw)
}

func stakingValidators(genesisState map[string]json.RawMessage) []abci.ValidatorUpdate {
	raw, ok := genesisState["staking"]
	if !ok {
		return nil
	}
	var stakingState StakingGenesisState
	if err := json.Unmarshal(raw, &stakingState); err != nil {
		return nil
	}

	var validators []abci.ValidatorUpdate
	for _, val := range stakingState.Validators {
		if val.Status != "BOND_STATUS_BONDED" {
			continue
		}
		if update, ok := ed25519Update(val.ConsensusPubkey.Key); ok {
			validators = append(validators, update)
		}
	}
	return validators
}

func gentxValidators(genesisState map[string]json.RawMessage) []abci.ValidatorUpdate {
	raw, ok := genesisState["genutil"]
	if !ok {
		return nil
	}
	var genutilState GenutilGenesisState
	if err := json.Unmarshal(raw, &genutilState); err != nil {
		return nil
	}

	var validators []abci.ValidatorUpdate
	for _, genTxRaw := range genutilState.GenTxs {
		var genTx GenTx
		if err := json.Unmarshal(genTxRaw, &genTx); err != nil {
			continue
		}
		for _, msgRaw := range genTx.Body.Messages {
			var msg MsgCreateValidator
			if err := json.Unmarshal(msgRaw, &msg); err != nil {
				continue
			}
			if msg.Type != "/cosmos.staking.v1beta1.MsgCreateValidator" {
				continue
			}
			if update, ok := ed25519Update(msg.Pubkey.Key); ok {
				validators = append(validators, update)
			}
		}
	}
	return validators
}

func ed25519Update(key string) (abci.ValidatorUpdate, bool) {
	pubKeyBytes, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return abci.ValidatorUpdate{}, false
	}
	return abci.ValidatorUpdate{
		PubKey: cmtcrypto.PublicKey{
			Sum: &cmtcrypto.PublicKey_Ed25519{Ed25519: pubKeyBytes},
		},
		Power: 100,
	}, true
}

// ExportAppStateAndValidators exports auth, bank and moonpool state at the
// last committed height
func (app *App) ExportAppStateAndValidators() (servertypes.ExportedApp, error) {
	height := app.LastBlockHeight() + 1
	ctx := app.NewContextLegacy(true, cmtproto.Header{Height: height})

	moonpoolGen, err := app.moonpoolModule.ExportGenesis(ctx)
	if err != nil {
		return servertypes.ExportedApp{}, err
	}

	appState := map[string]json.RawMessage{
		authtypes.ModuleName:     app.appCodec.MustMarshalJSON(app.AccountKeeper.ExportGenesis(ctx)),
		banktypes.ModuleName:     app.appCodec.MustMarshalJSON(app.BankKeeper.ExportGenesis(ctx)),
		moonpooltypes.ModuleName: moonpoolGen,
	}
	bz, err := json.MarshalIndent(appState, "", "  ")
	if err != nil {
		return servertypes.ExportedApp{}, err
	}

	return servertypes.ExportedApp{
		AppState:        bz,
		Height:          height,
		ConsensusParams: app.GetConsensusParams(ctx),
	}, nil
}

// LoadHeight loads a particular height
func (app *App) LoadHeight(height int64) error {
	return app.LoadVersion(height)
}

// LegacyAmino returns the legacy amino codec
func (app *App) LegacyAmino() *codec.LegacyAmino {
	return app.legacyAmino
}

// AppCodec returns the app codec
func (app *App) AppCodec() codec.Codec {
	return app.appCodec
}

// InterfaceRegistry returns the InterfaceRegistry
func (app *App) InterfaceRegistry() codectypes.InterfaceRegistry {
	return app.interfaceRegistry
}

// RegisterAPIRoutes registers all application module routes
func (app *App) RegisterAPIRoutes(apiSvr *api.Server, apiConfig config.APIConfig) {
	ModuleBasics.RegisterGRPCGatewayRoutes(apiSvr.ClientCtx, apiSvr.GRPCGatewayRouter)
}

// GetKey returns a store key
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// TxConfig returns the transaction config
func (app *App) TxConfig() client.TxConfig {
	return app.txConfig
}

// AutoCliOpts returns the autocli options for the app
func (app *App) AutoCliOpts() map[string]appmodule.AppModule {
	return map[string]appmodule.AppModule{}
}

// RegisterTxService implements the Application.RegisterTxService method
func (app *App) RegisterTxService(clientCtx client.Context) {
	authtx.RegisterTxService(app.BaseApp.GRPCQueryRouter(), clientCtx, app.BaseApp.Simulate, app.interfaceRegistry)
}

// RegisterTendermintService implements the Application.RegisterTendermintService method
func (app *App) RegisterTendermintService(clientCtx client.Context) {
	cmtservice.RegisterTendermintService(
		clientCtx,
		app.BaseApp.GRPCQueryRouter(),
		app.interfaceRegistry,
		app.Query,
	)
}

// RegisterNodeService implements the Application.RegisterNodeService method
func (app *App) RegisterNodeService(clientCtx client.Context, cfg config.Config) {
	nodeservice.RegisterNodeService(clientCtx, app.BaseApp.GRPCQueryRouter(), cfg)
}

// RegisterGRPCServer registers the app's gRPC services
func (app *App) RegisterGRPCServer(server gogoprotograpc.Server) {}

// SimulationManager returns the app's simulation manager
func (app *App) SimulationManager() *module.SimulationManager {
	return nil
}

// BlockedModuleAccountAddrs returns module account addresses that should not
// receive coins. The moonpool account mints and burns droplets in transit,
// so it stays reachable.
func BlockedModuleAccountAddrs(maccPerms map[string][]string) map[string]bool {
	blockedAddrs := make(map[string]bool)
	for acc := range maccPerms {
		blockedAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	delete(blockedAddrs, authtypes.NewModuleAddress(moonpooltypes.ModuleName).String())
	return blockedAddrs
}
