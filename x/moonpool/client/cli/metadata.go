package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/openalpha/moonpool/pkg/metadata"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// FlagMetadataConfig points at the metadata publisher TOML file.
const FlagMetadataConfig = "config"

// documentPutter is the part of metadata.Publisher the command uses.
type documentPutter interface {
	Put(ctx context.Context, key string, doc metadata.Document) error
}

// CmdPublishMetadata returns the command that uploads a pool's token metadata
// document before its owner mints the pool token. Publishing happens off
// chain: the chain only records the hash and derives the URI from params.
func CmdPublishMetadata() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish-metadata [pool] [hash]",
		Short: "Upload the metadata document a pool token will point at",
		Long: `Renders the token metadata document of a pool from its on-chain name,
symbol and the chain's metadata gateway, and uploads it under [hash] to the
bucket described by --config. With publishing disabled the document is only
printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			configPath, err := cmd.Flags().GetString(FlagMetadataConfig)
			if err != nil {
				return err
			}
			cfg, err := metadata.Load(configPath)
			if err != nil {
				return err
			}

			pool, err := queryPool(clientCtx, args[0])
			if err != nil {
				return err
			}
			params, err := queryParams(clientCtx)
			if err != nil {
				return err
			}

			var putter documentPutter
			if cfg.Enabled {
				publisher, err := metadata.NewPublisher(cmd.Context(), *cfg)
				if err != nil {
					return err
				}
				putter = publisher
			}
			doc, err := publishPoolMetadata(cmd.Context(), putter, params, pool, args[1])
			if err != nil {
				return err
			}
			return printJSON(clientCtx, doc)
		},
	}

	cmd.Flags().String(FlagMetadataConfig, "", "Path to the metadata publisher TOML config")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// publishPoolMetadata renders the document MintPoolToken will describe and
// uploads it when putter is set.
func publishPoolMetadata(ctx context.Context, putter documentPutter, params types.Params, pool *types.Pool, hash string) (metadata.Document, error) {
	if err := types.ValidateMetadataURI(hash); err != nil {
		return metadata.Document{}, fmt.Errorf("metadata hash must be 1-%d bytes: %w", types.MaxMetadataURILength, err)
	}
	if pool.IsInitialized {
		return metadata.Document{}, fmt.Errorf("pool %s already minted its token", pool.Address)
	}

	tm := types.NewTokenMetadata(pool.Name, pool.Symbol, params.MetadataURI(hash))
	doc := metadata.Document{
		Name:        tm.Name,
		Symbol:      tm.Symbol,
		Description: tm.Description,
		Image:       tm.Image,
	}
	if putter == nil {
		return doc, nil
	}
	if err := putter.Put(ctx, hash, doc); err != nil {
		return metadata.Document{}, err
	}
	return doc, nil
}
