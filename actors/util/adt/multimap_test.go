package adt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/tokenvault/vault-actors/actors/util/adt"
	"github.com/tokenvault/vault-actors/support/ipld"
	tutil "github.com/tokenvault/vault-actors/support/testing"
)

func TestMultimapRetainsInsertionOrder(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	mm, err := adt.MakeEmptyMultimap(store, adt.DefaultHamtBitwidth, adt.DefaultAmtBitwidth)
	require.NoError(t, err)

	a := adt.AddrKey(tutil.NewIDAddr(t, 101))
	b := adt.AddrKey(tutil.NewIDAddr(t, 102))

	for _, v := range []int64{5, 3, 9} {
		cv := cbg.CborInt(v)
		require.NoError(t, mm.Add(a, &cv))
	}
	one := cbg.CborInt(1)
	require.NoError(t, mm.Add(b, &one))

	root, err := mm.Root()
	require.NoError(t, err)
	reloaded, err := adt.AsMultimap(store, root, adt.DefaultHamtBitwidth, adt.DefaultAmtBitwidth)
	require.NoError(t, err)

	collect := func(k adt.Keyer) []int64 {
		var out cbg.CborInt
		var vals []int64
		require.NoError(t, reloaded.ForEach(k, &out, func(i int64) error {
			vals = append(vals, int64(out))
			return nil
		}))
		return vals
	}
	assert.Equal(t, []int64{5, 3, 9}, collect(a))
	assert.Equal(t, []int64{1}, collect(b))
	assert.Empty(t, collect(adt.AddrKey(tutil.NewIDAddr(t, 103))))

	keys := 0
	require.NoError(t, reloaded.ForAll(func(k string, arr *adt.Array) error {
		keys++
		assert.NotZero(t, arr.Length())
		return nil
	}))
	assert.Equal(t, 2, keys)

	require.NoError(t, reloaded.RemoveAll(a))
	assert.Empty(t, collect(a))
}
