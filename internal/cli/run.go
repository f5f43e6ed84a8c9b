package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/support/scenario"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Apply a scenario document",
		Long: `Create the accounts and actors a scenario declares, then apply its steps in order.

Each step's outcome is compared against its expectation and the run stops at the
first mismatch. With --db the resulting state is committed to the store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

type runReport struct {
	*scenario.Report
}

func (r runReport) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario: %s\n", r.Name)
	fmt.Fprintln(tw, "STEP\tACTION\tCODE\tRETURN\tEVENTS")
	for _, s := range r.Steps {
		fmt.Fprintf(tw, "%s\t%s %s\t%v\t%s\t%s\n", s.Name, s.Action, s.Target, s.Code, s.Return, strings.Join(s.Events, ","))
	}
	fmt.Fprintf(tw, "state root: %s\n", r.StateRoot)
	return tw.Flush()
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	log := newLogger(opts, cmd.ErrOrStderr())

	doc, err := scenario.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}

	m, err := openMachine(cmd.Context(), opts, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open machine", err)
	}
	defer func() { _ = m.close() }()

	report, runErr := scenario.Run(cmd.Context(), m.vm, doc, log)
	if runErr != nil {
		var mismatch *scenario.MismatchError
		if report == nil || !xerrors.As(runErr, &mismatch) {
			return WrapExitError(ExitCommandError, "scenario setup failed", runErr)
		}
		if err := formatter.Failure(runReport{report}, runErr); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "scenario failed", runErr)
	}

	if err := m.commit(); err != nil {
		return WrapExitError(ExitCommandError, "failed to commit state", err)
	}
	return formatter.Success(runReport{report})
}
