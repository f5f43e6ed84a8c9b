package adt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenvault/vault-actors/actors/util/adt"
	tutil "github.com/tokenvault/vault-actors/support/testing"
)

func TestAddrKey(t *testing.T) {
	idAddress1 := tutil.NewIDAddr(t, 101)
	idAddress2 := tutil.NewIDAddr(t, 102)
	actorAddress1 := tutil.NewActorAddr(t, "actor1")
	actorAddress2 := tutil.NewActorAddr(t, "222")

	t.Run("address to key string conversion", func(t *testing.T) {
		assert.Equal(t, "\x00\x65", adt.AddrKey(idAddress1).Key())
		assert.Equal(t, "\x00\x66", adt.AddrKey(idAddress2).Key())
		assert.Equal(t, "\x02\x58\xbe\x4f\xd7\x75\xa0\xc8\xcd\x9a\xed\x86\x4e\x73\xab\xb1\x86\x46\x5f\xef\xe1", adt.AddrKey(actorAddress1).Key())
		assert.Equal(t, "\x02\xaa\xd0\xb2\x98\xa9\xde\xab\xbb\xb6\u007f\x80\x5f\x66\xaa\x68\x8c\xdd\x89\xad\xf5", adt.AddrKey(actorAddress2).Key())
	})
}

func TestUIntKey(t *testing.T) {
	for _, i := range []uint64{0, 1, 127, 128, 300, 1 << 40} {
		k := adt.UIntKey(i).Key()
		parsed, err := adt.ParseUIntKey(k)
		require.NoError(t, err)
		assert.Equal(t, i, parsed)
	}

	_, err := adt.ParseUIntKey("\x80")
	assert.Error(t, err)
}
