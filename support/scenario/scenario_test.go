package scenario_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/support/scenario"
	"github.com/tokenvault/vault-actors/support/vm"
)

func TestDocuments(t *testing.T) {
	for _, name := range []string{"linear_vesting.yaml", "sale.yaml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc, err := scenario.Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			v := vm.NewVMWithSingletons(ctx, t)
			logger, _ := logtest.NewNullLogger()
			report, err := scenario.Run(ctx, v, doc, logger)
			require.NoError(t, err)
			assert.Len(t, report.Steps, len(doc.Steps))
			assert.Equal(t, v.StateRoot().String(), report.StateRoot)
			for _, a := range doc.Accounts {
				assert.Contains(t, report.Addresses, a.Name)
			}
		})
	}
}

func TestMismatchStopsTheRun(t *testing.T) {
	ctx := context.Background()
	doc, err := scenario.Parse([]byte(`
name: mismatch
accounts:
  - {name: alice, balance: "1"}
deploy:
  tokens:
    - {name: VLT, symbol: VLT, supply: "100", holder: alice}
steps:
  - name: too much
    from: alice
    target: VLT
    action: transfer
    args: {to: alice, amount: "101"}
  - name: never applied
    from: alice
    target: VLT
    action: total_supply
`))
	require.NoError(t, err)

	v := vm.NewVMWithSingletons(ctx, t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	report, err := scenario.Run(ctx, v, doc, logger)
	require.Error(t, err)

	var mismatch *scenario.MismatchError
	require.True(t, xerrors.As(err, &mismatch))
	assert.Equal(t, 0, mismatch.Step)
	assert.Equal(t, "too much", mismatch.Name)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, exitcode.ErrInsufficientFunds, report.Steps[0].Code)
	assert.NotEmpty(t, report.Steps[0].MsgID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "step applied", entry.Message)
	assert.Equal(t, "too much", entry.Data["step"])
}

func TestUnknownAction(t *testing.T) {
	ctx := context.Background()
	doc, err := scenario.Parse([]byte(`
accounts:
  - {name: alice, balance: "1"}
deploy:
  tokens:
    - {name: VLT, symbol: VLT, supply: "1", holder: alice}
steps:
  - {name: nope, from: alice, target: VLT, action: invest}
`))
	require.NoError(t, err)

	_, err = scenario.Run(ctx, vm.NewVMWithSingletons(ctx, t), doc, logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no action \"invest\"")
	assert.Contains(t, scenario.Actions(builtin.TokenActorCodeID), "transfer")
}

func TestDecode(t *testing.T) {
	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := scenario.Parse([]byte("name: x\nstart_time: 3\n"))
		assert.Error(t, err)
	})

	t.Run("names are unique", func(t *testing.T) {
		_, err := scenario.Parse([]byte(`
accounts:
  - {name: alice}
deploy:
  tokens:
    - {name: alice, symbol: A}
`))
		assert.Error(t, err)
	})

	t.Run("steps need an action and target", func(t *testing.T) {
		_, err := scenario.Parse([]byte("steps:\n  - {name: x, from: a}\n"))
		assert.Error(t, err)
	})

	t.Run("clock moves one way per step", func(t *testing.T) {
		_, err := scenario.Parse([]byte("steps:\n  - {name: x, action: claim, target: v, at: 1d, advance: 1d}\n"))
		assert.Error(t, err)
	})
}

func TestAmounts(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{"", "0"},
		{"1", "1000000000000000000"},
		{"0.25", "250000000000000000"},
		{"1000000", "1000000000000000000000000"},
		{"0.000000000000000001", "1"},
	} {
		amount, err := scenario.ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, amount.String(), tc.in)
	}

	for _, bad := range []string{"x", "-1", "0.0000000000000000001"} {
		_, err := scenario.ParseAmount(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "2.5", scenario.FormatAmount(big.Mul(big.NewInt(25), big.NewInt(1e17))))
	assert.Equal(t, "0", scenario.FormatAmount(big.Zero()))
	assert.Equal(t, "100000", scenario.FormatAmount(big.Mul(big.NewInt(100_000), builtin.TokenPrecision)))
}

func TestParseOffset(t *testing.T) {
	offset, err := scenario.ParseOffset("3d")
	require.NoError(t, err)
	assert.Equal(t, uint64(3*builtin.SecondsInDay), offset)

	offset, err = scenario.ParseOffset("90m")
	require.NoError(t, err)
	assert.Equal(t, uint64(5400), offset)

	_, err = scenario.ParseOffset("-1h")
	assert.Error(t, err)
	_, err = scenario.ParseOffset("xd")
	assert.Error(t, err)
}
