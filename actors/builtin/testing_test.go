package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

func TestMessageAccumulator(t *testing.T) {
	t.Run("basics", func(t *testing.T) {
		acc := &MessageAccumulator{}
		assert.True(t, acc.IsEmpty())

		acc.Add("one")
		assert.False(t, acc.IsEmpty())
		assert.Equal(t, []string{"one"}, acc.Messages())

		acc.Addf("tw%s", "o")
		acc.Require(true, "nope")
		acc.Require(false, "thr%s", "ee")
		acc.RequireNoError(nil, "nope")
		acc.RequireNoError(xerrors.New("boom"), "four")
		assert.Equal(t, []string{"one", "two", "three", "four: boom"}, acc.Messages())
	})

	t.Run("prefix", func(t *testing.T) {
		acc := &MessageAccumulator{}
		accA := acc.WithPrefix("lock %d: ", 0)

		accA.Add("aa")
		assert.Equal(t, []string{"lock 0: aa"}, acc.Messages())

		accB := accA.WithPrefix("recipient: ")
		accB.Add("bb")
		assert.Equal(t, []string{"lock 0: aa", "lock 0: recipient: bb"}, acc.Messages())
	})

	t.Run("merge", func(t *testing.T) {
		acc1 := &MessageAccumulator{}
		acc1.Add("one")

		acc2 := &MessageAccumulator{}
		acc2.Add("two")
		acc1.AddAll(acc2)
		acc1.AddAll(&MessageAccumulator{})
		assert.Equal(t, []string{"one", "two"}, acc1.Messages())
	})
}
