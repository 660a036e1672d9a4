package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Validation errors
var (
	ErrInvalidCalculation = errorsmod.Register(ModuleName, 2, "invalid calculation")
	ErrInvalidAmount      = errorsmod.Register(ModuleName, 3, "this amount is invalid")
	ErrInvalidPoolName    = errorsmod.Register(ModuleName, 4, "invalid pool name")
	ErrInvalidMaturity    = errorsmod.Register(ModuleName, 5, "maturity date is invalid")
	ErrInvalidSymbol      = errorsmod.Register(ModuleName, 6, "invalid pool symbol")
	ErrInvalidMetadataURI = errorsmod.Register(ModuleName, 7, "invalid metadata uri")
)

// State and phase errors
var (
	ErrPoolNotActivated     = errorsmod.Register(ModuleName, 20, "pool is not activated")
	ErrPoolAlreadyActivated = errorsmod.Register(ModuleName, 21, "pool is already activated")
	ErrPoolMatured          = errorsmod.Register(ModuleName, 22, "pool is already matured")
	ErrRaisePeriodNotEnded  = errorsmod.Register(ModuleName, 23, "raise period is not ended")
	ErrPoolNotInRaisePeriod = errorsmod.Register(ModuleName, 24, "pool is not in raise period")
	ErrLockPeriodNotOver    = errorsmod.Register(ModuleName, 25, "lock period is not over")
	ErrAlreadyInitialized   = errorsmod.Register(ModuleName, 26, "already initialized")
)

// Authorization and identity errors
var (
	ErrUnauthorized   = errorsmod.Register(ModuleName, 40, "unauthorized")
	ErrInvalidAccount = errorsmod.Register(ModuleName, 41, "invalid account info")
	ErrInvalidMint    = errorsmod.Register(ModuleName, 42, "invalid mint")
)

// Resource errors
var (
	ErrVaultNotInitialized  = errorsmod.Register(ModuleName, 60, "vault is not initialized")
	ErrNoRewardsToClaim     = errorsmod.Register(ModuleName, 61, "no rewards to claim")
	ErrAmountNotEnough      = errorsmod.Register(ModuleName, 62, "this amount is not enough")
	ErrExceedsMaximumSupply = errorsmod.Register(ModuleName, 63, "exceeds maximum supply")
	ErrPoolNotFound         = errorsmod.Register(ModuleName, 64, "pool not found")
	ErrAssetAlreadyExists   = errorsmod.Register(ModuleName, 65, "collateral asset already recorded for pool")
)
