package cmd

import (
	"io"
	"os"
	"time"

	"cosmossdk.io/log"
	confixcmd "cosmossdk.io/tools/confix/cmd"
	tmcfg "github.com/cometbft/cometbft/config"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/config"
	"github.com/cosmos/cosmos-sdk/client/debug"
	"github.com/cosmos/cosmos-sdk/client/keys"
	"github.com/cosmos/cosmos-sdk/client/pruning"
	"github.com/cosmos/cosmos-sdk/client/snapshot"
	"github.com/cosmos/cosmos-sdk/server"
	serverconfig "github.com/cosmos/cosmos-sdk/server/config"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	authcli "github.com/cosmos/cosmos-sdk/x/auth/client/cli"
	"github.com/cosmos/cosmos-sdk/x/auth/types"
	genutilcli "github.com/cosmos/cosmos-sdk/x/genutil/client/cli"
	"github.com/spf13/cobra"

	"github.com/openalpha/moonpool/app"
	moonpoolcli "github.com/openalpha/moonpool/x/moonpool/client/cli"
	moonpooltypes "github.com/openalpha/moonpool/x/moonpool/types"
)

// Version is set at build time.
var Version = "v0.1.0"

// NewRootCmd creates a new root command for moonpoold
func NewRootCmd() *cobra.Command {
	tempApp := app.NewApp(
		log.NewNopLogger(),
		dbm.NewMemDB(),
		nil,
		false,
		nil,
	)
	encodingConfig := app.MakeEncodingConfig()

	initClientCtx := client.Context{}.
		WithCodec(encodingConfig.Codec).
		WithInterfaceRegistry(encodingConfig.InterfaceRegistry).
		WithTxConfig(encodingConfig.TxConfig).
		WithLegacyAmino(encodingConfig.Amino).
		WithInput(os.Stdin).
		WithAccountRetriever(types.AccountRetriever{}).
		WithHomeDir(app.DefaultNodeHome).
		WithViper("MOONPOOL")

	rootCmd := &cobra.Command{
		Use:   "moonpoold",
		Short: "Moonpool - bonding-curve fundraising pools",
		Long: `Moonpool runs fundraising pools that issue droplet tokens,
first at a fixed raise rate and then on a linear bonding curve.`,
		PersistentPreRunE: persistentPreRun(initClientCtx),
	}

	basicManager := tempApp.BasicModuleManager
	rootCmd.AddCommand(
		genutilcli.InitCmd(basicManager, app.DefaultNodeHome),
		genutilcli.Commands(encodingConfig.TxConfig, basicManager, app.DefaultNodeHome),
		debug.Cmd(),
		confixcmd.ConfigCommand(),
		pruning.Cmd(newApp, app.DefaultNodeHome),
		snapshot.Cmd(newApp),
	)
	server.AddCommands(rootCmd, app.DefaultNodeHome, newApp, appExport, func(*cobra.Command) {})
	rootCmd.AddCommand(
		queryCommand(),
		txCommand(),
		keys.Commands(),
		VersionCmd(),
	)

	return rootCmd
}

// persistentPreRun loads client.toml and the node configs before any
// subcommand runs.
func persistentPreRun(clientCtx client.Context) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cmd.SetOut(cmd.OutOrStdout())
		cmd.SetErr(cmd.ErrOrStderr())

		clientCtx = clientCtx.WithCmdContext(cmd.Context())
		clientCtx, err := client.ReadPersistentCommandFlags(clientCtx, cmd.Flags())
		if err != nil {
			return err
		}
		if clientCtx, err = config.ReadFromClientConfig(clientCtx); err != nil {
			return err
		}
		if err := client.SetCmdClientContextHandler(clientCtx, cmd); err != nil {
			return err
		}

		template, appConfig := initAppConfig()
		return server.InterceptConfigsPreRunHandler(cmd, template, appConfig, initCometBFTConfig())
	}
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		authcli.QueryTxsByEventsCmd(),
		authcli.QueryTxCmd(),
		moonpoolcli.GetQueryCmd(),
	)
	return cmd
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		authcli.GetSignCommand(),
		authcli.GetBroadcastCommand(),
	)
	return cmd
}

func newApp(logger log.Logger, db dbm.DB, traceStore io.Writer, appOpts servertypes.AppOptions) servertypes.Application {
	return app.NewApp(logger, db, traceStore, true, appOpts, server.DefaultBaseappOptions(appOpts)...)
}

// appExport dumps auth, bank and moonpool state, at height when it is not -1.
// Zero-height export and module filtering do not apply: there is no staking
// state to reset.
func appExport(
	logger log.Logger,
	db dbm.DB,
	traceStore io.Writer,
	height int64,
	_ bool,
	_ []string,
	appOpts servertypes.AppOptions,
	_ []string,
) (servertypes.ExportedApp, error) {
	moonpoolApp := app.NewApp(logger, db, traceStore, height == -1, appOpts)

	if height != -1 {
		if err := moonpoolApp.LoadHeight(height); err != nil {
			return servertypes.ExportedApp{}, err
		}
	}

	return moonpoolApp.ExportAppStateAndValidators()
}

// initAppConfig accepts zero-fee txs in the default quote denom
func initAppConfig() (string, interface{}) {
	cfg := serverconfig.DefaultConfig()
	cfg.MinGasPrices = "0" + moonpooltypes.DefaultQuoteDenom
	return serverconfig.DefaultConfigTemplate, *cfg
}

// initCometBFTConfig returns the CometBFT config. Pool windows are measured
// in hours, so block times stay at one second.
func initCometBFTConfig() *tmcfg.Config {
	cfg := tmcfg.DefaultConfig()

	cfg.Consensus.TimeoutPropose = time.Second
	cfg.Consensus.TimeoutCommit = time.Second

	cfg.Mempool.Size = 5000
	cfg.Mempool.Recheck = true

	return cfg
}

// VersionCmd returns a command to print the version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Moonpool " + Version)
		},
	}
}
