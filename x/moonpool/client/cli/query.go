package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/kv"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/openalpha/moonpool/x/moonpool/types"
)

// GetQueryCmd returns the cli query commands for the moonpool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the moonpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryParams(),
		CmdQueryRegistry(),
		CmdQueryFeeVault(),
		CmdQueryPool(),
		CmdQueryPoolByName(),
		CmdQueryPools(),
		CmdQueryPoolAssets(),
		CmdQueryQuote(),
		CmdPublishMetadata(),
	)

	return cmd
}

// CmdQueryParams returns the command to query the module params
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the quote denom and metadata gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			params, err := queryParams(clientCtx)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, params)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryRegistry returns the command to query the program registry
func CmdQueryRegistry() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Query the program registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			var reg types.Registry
			if err := queryRecord(clientCtx, types.RegistryKey, &reg); err != nil {
				return err
			}
			return printJSON(clientCtx, reg)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryFeeVault returns the command to query the fee vault record
func CmdQueryFeeVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee-vault",
		Short: "Query the platform fee vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			var fv types.FeeVault
			if err := queryRecord(clientCtx, types.FeeVaultKey, &fv); err != nil {
				return err
			}
			return printJSON(clientCtx, fv)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPool returns the command to query a pool by address
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [address]",
		Short: "Query a pool by address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			pool, err := queryPool(clientCtx, args[0])
			if err != nil {
				return err
			}
			return printJSON(clientCtx, pool)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPoolByName returns the command to resolve a pool from owner and name
func CmdQueryPoolByName() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-by-name [owner] [name]",
		Short: "Derive a pool address from its owner and name and query it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			owner, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}
			pool, err := queryPool(clientCtx, types.PoolAddress(owner, args[1]).String())
			if err != nil {
				return err
			}
			return printJSON(clientCtx, pool)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPools returns the command to list pools, optionally by owner
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools [owner]",
		Short: "List all pools, or the pools of one owner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			var owner string
			if len(args) == 1 {
				owner = args[0]
			}

			pairs, err := querySubspace(clientCtx, types.PoolKeyPrefix)
			if err != nil {
				return err
			}
			pools, err := decodePools(pairs, owner)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, pools)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPoolAssets returns the command to list a pool's collateral records
func CmdQueryPoolAssets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets [pool]",
		Short: "List the collateral types attached to a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			poolAddr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}

			pairs, err := querySubspace(clientCtx, types.AssetKeyPrefixFor(poolAddr))
			if err != nil {
				return err
			}
			assets, err := decodeAssets(pairs)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, assets)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryQuote returns the command to price a buy or sell against a pool
func CmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [buy|sell] [pool] [amount]",
		Short: "Price a trade at the pool's current supply",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			pool, err := queryPool(clientCtx, args[1])
			if err != nil {
				return err
			}

			var quote *types.Quote
			switch args[0] {
			case "buy":
				quote, err = types.QuoteBuy(pool.CirculatingSupply, amount)
			case "sell":
				quote, err = types.QuoteSell(pool.CirculatingSupply, amount)
			default:
				return fmt.Errorf("side must be buy or sell, got %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(clientCtx, quote)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func queryPool(clientCtx client.Context, addr string) (*types.Pool, error) {
	poolAddr, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, err
	}
	var pool types.Pool
	if err := queryRecord(clientCtx, types.PoolKey(poolAddr), &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// queryParams falls back to the defaults the keeper applies when the
// params record is absent.
func queryParams(clientCtx client.Context) (types.Params, error) {
	var params types.Params
	err := queryRecord(clientCtx, types.ParamsKey, &params)
	if errors.Is(err, errRecordNotFound) {
		return types.DefaultParams(), nil
	}
	return params, err
}

var errRecordNotFound = errors.New("record not found")

func queryRecord(clientCtx client.Context, key []byte, v interface{}) error {
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return err
	}
	if len(bz) == 0 {
		return errRecordNotFound
	}
	return json.Unmarshal(bz, v)
}

// querySubspace returns every record under prefix in the moonpool store
func querySubspace(clientCtx client.Context, prefix []byte) ([]kv.Pair, error) {
	res, err := clientCtx.QueryABCI(abci.RequestQuery{
		Path:   "/store/" + types.StoreKey + "/subspace",
		Data:   prefix,
		Height: clientCtx.Height,
	})
	if err != nil {
		return nil, err
	}
	return decodeSubspace(res.Value)
}

// decodeSubspace reads the store's protobuf KV pairs response:
// repeated Pair pairs = 1, with bytes key = 1 and bytes value = 2.
func decodeSubspace(bz []byte) ([]kv.Pair, error) {
	var pairs []kv.Pair
	err := consumeFields(bz, func(num protowire.Number, field []byte) error {
		if num != 1 {
			return nil
		}
		var pair kv.Pair
		err := consumeFields(field, func(num protowire.Number, v []byte) error {
			switch num {
			case 1:
				pair.Key = v
			case 2:
				pair.Value = v
			}
			return nil
		})
		if err != nil {
			return err
		}
		pairs = append(pairs, pair)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode subspace: %w", err)
	}
	return pairs, nil
}

// consumeFields calls fn for every length-delimited field of a message and
// skips the rest.
func consumeFields(bz []byte, fn func(num protowire.Number, v []byte) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return protowire.ParseError(n)
		}
		bz = bz[n:]
		if typ != protowire.BytesType {
			if n = protowire.ConsumeFieldValue(num, typ, bz); n < 0 {
				return protowire.ParseError(n)
			}
			bz = bz[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(bz)
		if n < 0 {
			return protowire.ParseError(n)
		}
		if err := fn(num, v); err != nil {
			return err
		}
		bz = bz[n:]
	}
	return nil
}

// decodePools decodes pool records, keeping only owner's when owner is set
func decodePools(pairs []kv.Pair, owner string) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, len(pairs))
	for _, pair := range pairs {
		var pool types.Pool
		if err := json.Unmarshal(pair.Value, &pool); err != nil {
			return nil, err
		}
		if owner == "" || pool.Owner == owner {
			pools = append(pools, pool)
		}
	}
	return pools, nil
}

func decodeAssets(pairs []kv.Pair) ([]types.CollateralAsset, error) {
	assets := make([]types.CollateralAsset, 0, len(pairs))
	for _, pair := range pairs {
		var asset types.CollateralAsset
		if err := json.Unmarshal(pair.Value, &asset); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func parseAmount(s string) (uint64, error) {
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount == 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}

func printJSON(clientCtx client.Context, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(output) + "\n")
}
