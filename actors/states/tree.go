package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/util/adt"
)

var ErrActorNotFound = xerrors.New("actor not found")

// Value type for the actor HAMT.
type Actor struct {
	Code    cid.Cid // CID representing the code associated with the actor
	Head    cid.Cid // CID of the head state object for the actor
	Balance big.Int // Native balance, in atto units
}

// The persisted root of a machine: the actor HAMT, the address resolution table,
// the next actor ID to assign and the block timestamp.
type StateRoot struct {
	Actors    cid.Cid
	Addresses cid.Cid
	NextID    uint64
	Timestamp uint64
}

// Tree is the state tree: a map of ID addresses to actors, plus the table resolving
// public-key addresses to IDs.
type Tree struct {
	Map       *adt.Map
	Addresses *adt.Map
	NextID    uint64
	Timestamp uint64
	Store     adt.Store
}

// Initializes a new, empty state tree backed by a store.
func NewTree(store adt.Store) (*Tree, error) {
	actors, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	addresses, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Map:       actors,
		Addresses: addresses,
		NextID:    builtin.FirstNonSingletonActorId,
		Store:     store,
	}, nil
}

// Loads a tree from a root CID previously returned by Flush.
func LoadTree(store adt.Store, root cid.Cid) (*Tree, error) {
	var sr StateRoot
	if err := store.Get(store.Context(), root, &sr); err != nil {
		return nil, xerrors.Errorf("failed to load state root %v: %w", root, err)
	}
	actors, err := adt.AsMap(store, sr.Actors, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load actors: %w", err)
	}
	addresses, err := adt.AsMap(store, sr.Addresses, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load address table: %w", err)
	}
	return &Tree{
		Map:       actors,
		Addresses: addresses,
		NextID:    sr.NextID,
		Timestamp: sr.Timestamp,
		Store:     store,
	}, nil
}

// Writes the tree to its store and returns the root CID.
func (t *Tree) Flush() (cid.Cid, error) {
	actors, err := t.Map.Root()
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to flush actors: %w", err)
	}
	addresses, err := t.Addresses.Root()
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to flush address table: %w", err)
	}
	return t.Store.Put(t.Store.Context(), &StateRoot{
		Actors:    actors,
		Addresses: addresses,
		NextID:    t.NextID,
		Timestamp: t.Timestamp,
	})
}

// Loads the actor at an ID address.
func (t *Tree) GetActor(id addr.Address) (*Actor, bool, error) {
	if id.Protocol() != addr.ID {
		return nil, false, xerrors.Errorf("non-ID address %v invalid as actor key", id)
	}
	var actor Actor
	found, err := t.Map.Get(adt.AddrKey(id), &actor)
	return &actor, found, err
}

// Sets the actor at an ID address, overwriting any previous value.
func (t *Tree) SetActor(id addr.Address, actor *Actor) error {
	if id.Protocol() != addr.ID {
		return xerrors.Errorf("non-ID address %v invalid as actor key", id)
	}
	return t.Map.Put(adt.AddrKey(id), actor)
}

// Resolves an address to its ID form. ID addresses resolve to themselves.
func (t *Tree) LookupID(a addr.Address) (addr.Address, bool, error) {
	if a.Protocol() == addr.ID {
		return a, true, nil
	}
	var id cbg.CborInt
	found, err := t.Addresses.Get(adt.AddrKey(a), &id)
	if !found || err != nil {
		return addr.Undef, false, err
	}
	idAddr, err := addr.NewIDAddress(uint64(id))
	if err != nil {
		return addr.Undef, false, err
	}
	return idAddr, true, nil
}

// Assigns the next actor ID, and maps the given address to it unless it is itself empty.
func (t *Tree) RegisterNewAddress(a addr.Address) (addr.Address, error) {
	idAddr, err := addr.NewIDAddress(t.NextID)
	if err != nil {
		return addr.Undef, err
	}
	if a != addr.Undef {
		if _, found, err := t.LookupID(a); err != nil {
			return addr.Undef, err
		} else if found {
			return addr.Undef, xerrors.Errorf("address %v already registered", a)
		}
		id := cbg.CborInt(t.NextID)
		if err := t.Addresses.Put(adt.AddrKey(a), &id); err != nil {
			return addr.Undef, xerrors.Errorf("failed to map address %v: %w", a, err)
		}
	}
	t.NextID++
	return idAddr, nil
}

// Visits every actor, in HAMT order.
func (t *Tree) ForEach(fn func(id addr.Address, actor *Actor) error) error {
	var val Actor
	return t.Map.ForEach(&val, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		return fn(a, &val)
	})
}

// Visits every entry in the address resolution table.
func (t *Tree) ForEachAddress(fn func(a addr.Address, id addr.Address) error) error {
	var val cbg.CborInt
	return t.Addresses.ForEach(&val, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		id, err := addr.NewIDAddress(uint64(val))
		if err != nil {
			return err
		}
		return fn(a, id)
	})
}
