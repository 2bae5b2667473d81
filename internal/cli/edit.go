package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/pkg/workflow"
)

// editCommand creates the edit command for interactive graph editing.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [graph.json]",
		Short: "Edit a day graph interactively in the terminal",
		Long: `Edit a day graph interactively in the terminal.

The editor shows one day at a time as a chronological node list with live
validation status. Nodes can be added, retyped, deleted, repositioned, and
wired with advisory edges; every mutation is undoable. Saving writes the
full multi-day graph back to disk.

Key bindings:
  ↑/k ↓/j     navigate nodes
  tab         next day
  a           add node (attraction)
  t           cycle the selected node's type
  x           delete the selected node
  e           connect selected node to the next one
  m           move mode (arrows reposition, enter commits, esc cancels)
  l           auto-layout the day
  u / r       undo / redo
  s           save
  q           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

func (c *CLI) runEdit(input, output string) error {
	days, err := workflow.ReadDaysFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if output == "" {
		output = input
	}

	return runEditorTUI(days, cfg, output)
}
