package types

// Event types
const (
	EventTypeBootstrap     = "moonpool_bootstrap"
	EventTypeCreatePool    = "moonpool_create_pool"
	EventTypeMintPoolToken = "moonpool_mint_pool_token"
	EventTypeContribute    = "moonpool_contribute"
	EventTypeAddAsset      = "moonpool_add_asset"
	EventTypeBuy           = "moonpool_buy"
	EventTypeSell          = "moonpool_sell"
	EventTypeFee           = "moonpool_fee"
)

// Event attributes
const (
	AttributeKeyAdmin       = "admin"
	AttributeKeyPool        = "pool"
	AttributeKeyOwner       = "owner"
	AttributeKeyName        = "name"
	AttributeKeySymbol      = "symbol"
	AttributeKeyTrader      = "trader"
	AttributeKeyAmount      = "amount"
	AttributeKeyValue       = "value"
	AttributeKeyMinted      = "minted"
	AttributeKeySupply      = "supply"
	AttributeKeyTotalRaised = "total_raised"
	AttributeKeyDenom       = "denom"
	AttributeKeyVault       = "vault"
	AttributeKeyURI         = "uri"
	AttributeKeyFeeKind     = "fee_kind"
	AttributeKeyRecipient   = "recipient"
)

// Fee kinds
const (
	FeeKindCreation = "creation"
	FeeKindOwner    = "owner"
	FeeKindPlatform = "platform"
)
