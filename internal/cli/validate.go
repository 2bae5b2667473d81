package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/pkg/workflow"
)

// validateCommand creates the validate command for checking day graphs.
func (c *CLI) validateCommand() *cobra.Command {
	var dayNumber int

	cmd := &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check a day graph for scheduling conflicts",
		Long: `Check a day graph for scheduling conflicts.

Validation reports three kinds of findings per node:
  - errors for time-overlapping activities (each names the other activity)
  - warnings for activities scheduled outside declared opening hours
  - warnings for negative costs or costs far above the day's average

The command exits non-zero when any node carries an error, so it can gate
scripts; warnings alone do not fail the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], dayNumber)
		},
	}

	cmd.Flags().IntVarP(&dayNumber, "day", "d", 0, "validate only this day number (default: all days)")

	return cmd
}

func (c *CLI) runValidate(input string, dayNumber int) error {
	days, err := workflow.ReadDaysFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	vopts := cfg.ValidateOptions()

	var errCount, warnCount int
	for _, day := range days {
		if dayNumber != 0 && day.DayNumber != dayNumber {
			continue
		}

		nodes := workflow.Validate(day, vopts)
		fmt.Println(StyleTitle.Render(fmt.Sprintf("Day %d", day.DayNumber)) +
			" " + StyleDim.Render(day.Date))
		for _, n := range nodes {
			printNode(n)
			switch n.Validation.Status {
			case workflow.StatusError:
				errCount++
			case workflow.StatusWarning:
				warnCount++
			}
		}
		printNewline()
	}

	switch {
	case errCount > 0:
		printError("%d conflict(s), %d warning(s)", errCount, warnCount)
		return fmt.Errorf("graph has %d node(s) with conflicts", errCount)
	case warnCount > 0:
		printWarning("%d warning(s), no conflicts", warnCount)
	default:
		printSuccess("No conflicts found")
	}
	return nil
}
