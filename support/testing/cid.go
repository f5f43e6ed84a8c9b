package testing

import (
	"fmt"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// NewCIDSource returns a function yielding a new CID on every call, distinct from those of
// any other source with a different label. Useful for keys absent from every store.
func NewCIDSource(label string) func() cid.Cid {
	builder := cid.V1Builder{Codec: cid.DagCBOR, MhType: mh.SHA2_256}
	n := 0
	return func() cid.Cid {
		n++
		c, err := builder.Sum([]byte(fmt.Sprintf("%s/%d", label, n)))
		if err != nil {
			panic(err)
		}
		return c
	}
}
