package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/kv"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/openalpha/moonpool/pkg/metadata"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

func testAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// encodePairs builds a subspace response the way the IAVL store does.
func encodePairs(pairs ...kv.Pair) []byte {
	var out []byte
	for _, p := range pairs {
		var pair []byte
		pair = protowire.AppendTag(pair, 1, protowire.BytesType)
		pair = protowire.AppendBytes(pair, p.Key)
		pair = protowire.AppendTag(pair, 2, protowire.BytesType)
		pair = protowire.AppendBytes(pair, p.Value)

		out = protowire.AppendTag(out, 1, protowire.BytesType)
		out = protowire.AppendBytes(out, pair)
	}
	return out
}

func TestDecodeSubspace(t *testing.T) {
	want := []kv.Pair{
		{Key: []byte{0x03, 0x01}, Value: []byte(`{"name":"Moon"}`)},
		{Key: []byte{0x03, 0x02}, Value: []byte(`{"name":"Sun"}`)},
	}
	got, err := decodeSubspace(encodePairs(want...))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = decodeSubspace(nil)
	require.NoError(t, err)
	require.Empty(t, got)

	// Unknown varint fields are skipped.
	bz := protowire.AppendVarint(protowire.AppendTag(nil, 9, protowire.VarintType), 7)
	got, err = decodeSubspace(append(bz, encodePairs(want[0])...))
	require.NoError(t, err)
	require.Equal(t, want[:1], got)

	_, err = decodeSubspace([]byte{0x0a, 0x05, 0x01})
	require.Error(t, err)
}

func TestDecodePoolsFiltersByOwner(t *testing.T) {
	now := time.Unix(1_735_689_600, 0).UTC()
	moon := types.NewPool(testAddr("owner"), "Moon", "MOON", 1, types.DefaultQuoteDenom, now)
	sun := types.NewPool(testAddr("other"), "Sun", "SUN", 1, types.DefaultQuoteDenom, now)

	var pairs []kv.Pair
	for _, p := range []*types.Pool{moon, sun} {
		bz, err := json.Marshal(p)
		require.NoError(t, err)
		pairs = append(pairs, kv.Pair{Key: types.PoolKey(p.GetAddress()), Value: bz})
	}

	all, err := decodePools(pairs, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	owned, err := decodePools(pairs, moon.Owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, moon.Address, owned[0].Address)

	_, err = decodePools([]kv.Pair{{Value: []byte("{")}}, "")
	require.Error(t, err)
}

func TestDecodeAssets(t *testing.T) {
	asset := types.CollateralAsset{Pool: testAddr("pool").String(), Denom: "uusdc", Amount: 5}
	bz, err := json.Marshal(asset)
	require.NoError(t, err)

	assets, err := decodeAssets([]kv.Pair{{Value: bz}})
	require.NoError(t, err)
	require.Equal(t, []types.CollateralAsset{asset}, assets)
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("1000")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), amount)

	for _, s := range []string{"0", "-1", "1.5", "18446744073709551616", ""} {
		_, err := parseAmount(s)
		require.Error(t, err, s)
	}
}

type capturePutter struct {
	key string
	doc metadata.Document
	err error
}

func (c *capturePutter) Put(_ context.Context, key string, doc metadata.Document) error {
	c.key = key
	c.doc = doc
	return c.err
}

func TestPublishPoolMetadata(t *testing.T) {
	pool := types.NewPool(testAddr("owner"), "Moon", "MOON", 1, types.DefaultQuoteDenom, time.Unix(1_735_689_600, 0).UTC())
	params := types.Params{QuoteDenom: types.DefaultQuoteDenom, MetadataGateway: "https://cdn.example"}
	want := metadata.Document{
		Name:        "Moon",
		Symbol:      "MOON",
		Description: "Moon Moonpool droplet.",
		Image:       "https://cdn.example/ipfs/QmHash",
	}

	putter := &capturePutter{}
	doc, err := publishPoolMetadata(context.Background(), putter, params, pool, "QmHash")
	require.NoError(t, err)
	require.Equal(t, want, doc)
	require.Equal(t, "QmHash", putter.key)
	require.Equal(t, want, putter.doc)

	// Without a putter the document is only rendered.
	doc, err = publishPoolMetadata(context.Background(), nil, params, pool, "QmHash")
	require.NoError(t, err)
	require.Equal(t, want, doc)

	putter.err = errors.New("bucket gone")
	_, err = publishPoolMetadata(context.Background(), putter, params, pool, "QmHash")
	require.EqualError(t, err, "bucket gone")

	_, err = publishPoolMetadata(context.Background(), nil, params, pool, "")
	require.ErrorIs(t, err, types.ErrInvalidMetadataURI)

	pool.IsInitialized = true
	_, err = publishPoolMetadata(context.Background(), nil, params, pool, "QmHash")
	require.Error(t, err)
}
