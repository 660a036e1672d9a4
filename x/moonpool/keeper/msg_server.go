package keeper

import (
	"context"

	"github.com/openalpha/moonpool/metrics"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

var _ types.MsgServer = (*MsgServer)(nil)

// MsgServer defines the moonpool MsgServer
type MsgServer struct {
	keeper  *Keeper
	metrics *metrics.Collector
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper, metrics: metrics.GetCollector()}
}

// Bootstrap handles MsgBootstrap
func (m *MsgServer) Bootstrap(ctx context.Context, msg *types.MsgBootstrap) (*types.MsgBootstrapResponse, error) {
	timer := metrics.NewTimer()
	fv, err := m.keeper.Bootstrap(ctx, msg.Admin)
	m.metrics.RecordOperation(types.TypeMsgBootstrap, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	return &types.MsgBootstrapResponse{FeeVault: fv.Address}, nil
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	timer := metrics.NewTimer()
	pool, err := m.keeper.CreatePool(ctx, msg.Owner, msg.Name, msg.Symbol, msg.RaiseGoal)
	m.metrics.RecordOperation(types.TypeMsgCreatePool, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	m.metrics.RecordPoolCreated(types.PoolCreationFee)
	return &types.MsgCreatePoolResponse{Pool: pool.Address}, nil
}

// MintPoolToken handles MsgMintPoolToken
func (m *MsgServer) MintPoolToken(ctx context.Context, msg *types.MsgMintPoolToken) (*types.MsgMintPoolTokenResponse, error) {
	timer := metrics.NewTimer()
	pool, err := m.keeper.MintPoolToken(ctx, msg.Owner, msg.Pool, msg.MetadataHash)
	m.metrics.RecordOperation(types.TypeMsgMintPoolToken, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	return &types.MsgMintPoolTokenResponse{Denom: pool.TokenDenom, URI: pool.URI}, nil
}

// Contribute handles MsgContribute
func (m *MsgServer) Contribute(ctx context.Context, msg *types.MsgContribute) (*types.MsgContributeResponse, error) {
	timer := metrics.NewTimer()
	res, err := m.keeper.Contribute(ctx, msg.Contributor, msg.Pool, msg.Amount)
	m.metrics.RecordOperation(types.TypeMsgContribute, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	m.metrics.RecordContribution(res.Pool, res.Amount, res.PlatformFee)
	m.metrics.RecordPoolState(res.Pool, res.Supply, res.TotalRaised)
	return &types.MsgContributeResponse{Minted: res.Minted}, nil
}

// AddAsset handles MsgAddAsset
func (m *MsgServer) AddAsset(ctx context.Context, msg *types.MsgAddAsset) (*types.MsgAddAssetResponse, error) {
	timer := metrics.NewTimer()
	asset, err := m.keeper.AddAsset(ctx, msg.Owner, msg.Pool, msg.Denom, msg.Amount)
	m.metrics.RecordOperation(types.TypeMsgAddAsset, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	return &types.MsgAddAssetResponse{Vault: asset.Vault}, nil
}

// Buy handles MsgBuy
func (m *MsgServer) Buy(ctx context.Context, msg *types.MsgBuy) (*types.MsgBuyResponse, error) {
	timer := metrics.NewTimer()
	res, err := m.keeper.Buy(ctx, msg.Buyer, msg.Pool, msg.Amount)
	m.metrics.RecordOperation(types.TypeMsgBuy, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	m.metrics.RecordTrade(res.Pool, types.TypeMsgBuy, res.Amount, res.Value, res.OwnerFee, res.PlatformFee)
	return &types.MsgBuyResponse{Cost: res.Value}, nil
}

// Sell handles MsgSell
func (m *MsgServer) Sell(ctx context.Context, msg *types.MsgSell) (*types.MsgSellResponse, error) {
	timer := metrics.NewTimer()
	res, err := m.keeper.Sell(ctx, msg.Seller, msg.Pool, msg.Amount)
	m.metrics.RecordOperation(types.TypeMsgSell, err, timer.ElapsedMs())
	if err != nil {
		return nil, err
	}
	m.metrics.RecordTrade(res.Pool, types.TypeMsgSell, res.Amount, res.Value, res.OwnerFee, res.PlatformFee)
	return &types.MsgSellResponse{Proceeds: res.Value}, nil
}
