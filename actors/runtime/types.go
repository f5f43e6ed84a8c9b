package runtime

import (
	"io"
	"io/ioutil"

	"github.com/filecoin-project/go-state-types/rt"
)

// Concrete types associated with the runtime interface.

// An actor implementation the machine can dispatch to.
type VMActor interface {
	rt.VMActor
	// Singletons exist from genesis at a fixed address and are never deployed.
	IsSingleton() bool
}

// Wraps already-encoded CBOR so it can be sent, or received, without knowing its type.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

func (b *CBORBytes) UnmarshalCBOR(r io.Reader) error {
	var err error
	*b, err = ioutil.ReadAll(r)
	return err
}
