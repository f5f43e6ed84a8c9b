package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// CheckActorExports checks that every exported method of the actor has the signature the VM can dispatch to.
func CheckActorExports(t *testing.T, act interface{ Exports() []interface{} }) {
	for i, m := range act.Exports() {
		if i == 0 { // Send is implicit
			continue
		}

		if m == nil {
			continue
		}

		meth := reflect.ValueOf(m)
		mt := meth.Type()
		require.Equal(t, reflect.Func, mt.Kind(), "method %d is not a function", i)
		require.Equal(t, 2, mt.NumIn(), "method %d does not take two parameters", i)
		require.Equal(t, typeOfRuntimeInterface, mt.In(0), "method %d does not take the runtime first", i)
		require.True(t, mt.In(1).Implements(typeOfCborUnmarshaler), "method %d params are not unmarshalable", i)
		require.Equal(t, 1, mt.NumOut(), "method %d does not return a single value", i)
		require.True(t, mt.Out(0).Implements(typeOfCborMarshaler), "method %d return is not marshalable", i)
	}
}
