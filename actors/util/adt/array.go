package adt

import (
	"bytes"

	amt "github.com/filecoin-project/go-amt-ipld/v4"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// DefaultAmtBitwidth is the bitwidth of the arrays backing actor state.
var DefaultAmtBitwidth = 3

// Array stores a sparse sequence of values in an AMT.
type Array struct {
	lastCid cid.Cid
	root    *amt.Root
	store   Store
}

// AsArray interprets a store as an AMT-based array with root `r`.
func AsArray(s Store, r cid.Cid, bitwidth int) (*Array, error) {
	root, err := amt.LoadAMT(s.Context(), s, r, amt.UseTreeBitWidth(uint(bitwidth)))
	if err != nil {
		return nil, xerrors.Errorf("failed to load AMT with root %v: %w", r, err)
	}

	return &Array{
		lastCid: r,
		root:    root,
		store:   s,
	}, nil
}

// Creates a new array backed by an empty AMT.
func MakeEmptyArray(s Store, bitwidth int) (*Array, error) {
	root, err := amt.NewAMT(s, amt.UseTreeBitWidth(uint(bitwidth)))
	if err != nil {
		return nil, err
	}
	return &Array{
		lastCid: cid.Undef,
		root:    root,
		store:   s,
	}, nil
}

// Writes a new empty array to the store, returning its CID.
func StoreEmptyArray(s Store, bitwidth int) (cid.Cid, error) {
	arr, err := MakeEmptyArray(s, bitwidth)
	if err != nil {
		return cid.Undef, err
	}
	return arr.Root()
}

// Returns the root CID of the underlying AMT.
func (a *Array) Root() (cid.Cid, error) {
	c, err := a.root.Flush(a.store.Context())
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to flush AMT root: %w", err)
	}
	a.lastCid = c
	return c, nil
}

// Appends a value to the end of the array. Assumes continuous array.
// If the array isn't continuous use Set and a separate counter.
func (a *Array) AppendContinuous(value cbor.Marshaler) error {
	if err := a.root.Set(a.store.Context(), a.root.Len(), value); err != nil {
		return xerrors.Errorf("append failed to set index %v value %v in root %v: %w", a.root.Len(), value, a.lastCid, err)
	}
	return nil
}

// Sets the value at index `i`, overwriting any previous value.
func (a *Array) Set(i uint64, value cbor.Marshaler) error {
	if err := a.root.Set(a.store.Context(), i, value); err != nil {
		return xerrors.Errorf("failed to set index %v value %v in root %v: %w", i, value, a.lastCid, err)
	}
	return nil
}

// Gets the value at index `i` into `out`, returning whether it was found.
func (a *Array) Get(i uint64, out cbor.Unmarshaler) (bool, error) {
	found, err := a.root.Get(a.store.Context(), i, out)
	if err != nil {
		return false, xerrors.Errorf("failed to get index %v in root %v: %w", i, a.lastCid, err)
	}
	return found, nil
}

// Returns the number of values in the array.
func (a *Array) Length() uint64 {
	return a.root.Len()
}

// Iterates all entries in the array, deserializing each value in turn into `out` and then calling a function.
// Iteration halts if the function returns an error.
// If the output parameter is nil, deserialization is skipped.
func (a *Array) ForEach(out cbor.Unmarshaler, fn func(i int64) error) error {
	return a.root.ForEach(a.store.Context(), func(k uint64, val *cbg.Deferred) error {
		if out != nil {
			if deferred, ok := out.(*cbg.Deferred); ok {
				// fast-path deferred -> deferred to avoid re-decoding.
				*deferred = *val
			} else if err := out.UnmarshalCBOR(bytes.NewReader(val.Raw)); err != nil {
				return err
			}
		}
		return fn(int64(k))
	})
}
