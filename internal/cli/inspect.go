package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	addr "github.com/filecoin-project/go-address"
	"github.com/spf13/cobra"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/states"
	"github.com/tokenvault/vault-actors/support/scenario"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the actors of the committed state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, cmd)
		},
	}
	return cmd
}

type actorInfo struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Balance string `json:"balance"`
	Head    string `json:"head"`
}

type inspectResult struct {
	StateRoot string      `json:"state_root"`
	Timestamp uint64      `json:"timestamp"`
	Actors    []actorInfo `json:"actors"`
}

func (r *inspectResult) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "state root: %s\ntimestamp: %d\n", r.StateRoot, r.Timestamp)
	fmt.Fprintln(tw, "ID\tCODE\tBALANCE")
	for _, a := range r.Actors {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Code, a.Balance)
	}
	return tw.Flush()
}

func runInspect(opts *RootOptions, cmd *cobra.Command) error {
	if opts.DB == "" {
		return NewExitError(ExitCommandError, "inspect needs a store: pass --db")
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	m, err := openMachine(cmd.Context(), opts, newLogger(opts, cmd.ErrOrStderr()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open machine", err)
	}
	defer func() { _ = m.close() }()

	result := &inspectResult{
		StateRoot: m.vm.StateRoot().String(),
		Timestamp: m.vm.Timestamp(),
	}
	err = m.vm.ForEachActor(func(id addr.Address, act *states.Actor) error {
		result.Actors = append(result.Actors, actorInfo{
			ID:      id.String(),
			Code:    strings.TrimPrefix(builtin.ActorNameByCode(act.Code), "tv/1/"),
			Balance: scenario.FormatAmount(act.Balance),
			Head:    act.Head.String(),
		})
		return nil
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read state", err)
	}
	return formatter.Success(result)
}
