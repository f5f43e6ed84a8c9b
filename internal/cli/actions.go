package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/support/scenario"
)

// NewActionsCommand creates the actions command.
func NewActionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the step actions scenario documents can use, by actor type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(listActions())
		},
	}
	return cmd
}

type actionList map[string][]string

func (l actionList) renderText(w io.Writer) error {
	for _, name := range actorTypes {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, strings.Join(l[name], ", ")); err != nil {
			return err
		}
	}
	return nil
}

var actorTypes = []string{"account", "token", "vault", "sale"}

func listActions() actionList {
	return actionList{
		"account": scenario.Actions(builtin.AccountActorCodeID),
		"token":   scenario.Actions(builtin.TokenActorCodeID),
		"vault":   scenario.Actions(builtin.VaultActorCodeID),
		"sale":    scenario.Actions(builtin.SaleActorCodeID),
	}
}
