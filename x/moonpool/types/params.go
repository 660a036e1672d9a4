package types

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultMetadataGateway prefixes metadata hashes in token URIs
const DefaultMetadataGateway = "https://ipfs.io"

// Params are the chain-wide moonpool settings. They live in module state so
// every validator derives the same pools and token URIs.
type Params struct {
	// QuoteDenom is the collateral new pools raise and trade in
	QuoteDenom string `json:"quote_denom"`
	// MetadataGateway is joined with "/ipfs/<hash>" to form token URIs
	MetadataGateway string `json:"metadata_gateway"`
}

// DefaultParams returns the default moonpool params
func DefaultParams() Params {
	return Params{
		QuoteDenom:      DefaultQuoteDenom,
		MetadataGateway: DefaultMetadataGateway,
	}
}

// Validate checks the params
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.QuoteDenom); err != nil {
		return fmt.Errorf("invalid quote denom: %w", err)
	}
	if !strings.HasPrefix(p.MetadataGateway, "https://") && !strings.HasPrefix(p.MetadataGateway, "http://") {
		return fmt.Errorf("metadata gateway %q must be an http(s) URL", p.MetadataGateway)
	}
	if strings.HasSuffix(p.MetadataGateway, "/") {
		return fmt.Errorf("metadata gateway %q must not end with a slash", p.MetadataGateway)
	}
	return nil
}

// MetadataURI returns the gateway URI of a metadata document
func (p Params) MetadataURI(hash string) string {
	return p.MetadataGateway + "/ipfs/" + hash
}
