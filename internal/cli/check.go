package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the invariants of the committed state",
		Long: `Check every actor's state invariants and the relations between actors:
vault custody against token balances, sales against their tokens, and the
address table against the accounts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}
	return cmd
}

type checkResult struct {
	StateRoot  string   `json:"state_root"`
	Violations []string `json:"violations"`
}

func (r *checkResult) renderText(w io.Writer) error {
	if len(r.Violations) == 0 {
		_, err := fmt.Fprintf(w, "state %s: ok\n", r.StateRoot)
		return err
	}
	for _, v := range r.Violations {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	if opts.DB == "" {
		return NewExitError(ExitCommandError, "check needs a store: pass --db")
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	m, err := openMachine(cmd.Context(), opts, newLogger(opts, cmd.ErrOrStderr()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open machine", err)
	}
	defer func() { _ = m.close() }()

	// No message mints or burns native value, so the total is whatever the accounts were endowed with.
	total, err := m.vm.TotalBalance()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read state", err)
	}
	msgs, err := m.vm.CheckStateInvariants(total)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check state", err)
	}

	result := &checkResult{StateRoot: m.vm.StateRoot().String(), Violations: msgs.Messages()}
	if !msgs.IsEmpty() {
		violations := xerrors.Errorf("%d invariant violations", len(result.Violations))
		if err := formatter.Failure(result, violations); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "invariants violated", violations)
	}
	return formatter.Success(result)
}
