package app

import (
	"strings"
	"testing"

	"cosmossdk.io/log"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	moonpooltypes "github.com/openalpha/moonpool/x/moonpool/types"
)

func TestBlockedModuleAccountAddrs(t *testing.T) {
	blocked := BlockedModuleAccountAddrs(map[string][]string{
		authtypes.FeeCollectorName: nil,
		moonpooltypes.ModuleName:   {authtypes.Minter, authtypes.Burner},
	})
	require.True(t, blocked[authtypes.NewModuleAddress(authtypes.FeeCollectorName).String()])
	require.False(t, blocked[authtypes.NewModuleAddress(moonpooltypes.ModuleName).String()])
}

// Moonpool operations are keeper calls, so no moonpool message may decode
// out of a transaction.
func TestMakeEncodingConfigRegistersNoMoonpoolMsgs(t *testing.T) {
	cfg := MakeEncodingConfig()
	impls := cfg.InterfaceRegistry.ListImplementations(sdk.MsgInterfaceProtoName)
	require.NotEmpty(t, impls)
	for _, url := range impls {
		require.False(t, strings.HasPrefix(url, "/moonpool."), "unexpected msg %s", url)
	}
}

func TestDefaultGenesisCarriesParams(t *testing.T) {
	cfg := MakeEncodingConfig()
	raw := ModuleBasics.DefaultGenesis(cfg.Codec)[moonpooltypes.ModuleName]

	gs, err := moonpooltypes.ParseGenesis(raw)
	require.NoError(t, err)
	require.Equal(t, moonpooltypes.DefaultParams(), gs.Params)
	require.NoError(t, gs.Validate())
}

func TestNewAppWiresMsgServer(t *testing.T) {
	app := NewApp(log.NewNopLogger(), dbm.NewMemDB(), nil, true, nil)
	require.NotNil(t, app.MoonpoolKeeper)
	require.NotNil(t, app.MoonpoolMsgServer)
	require.NotNil(t, app.MoonpoolQueryServer)

	ctx := app.NewUncachedContext(false, cmtproto.Header{})
	require.Equal(t, moonpooltypes.DefaultParams(), app.MoonpoolQueryServer.Params(ctx))
}
