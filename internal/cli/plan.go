package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// planCommand creates the plan command for converting trips into day graphs.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output string
		demo   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [trip.json]",
		Short: "Convert a trip itinerary into an editable day graph",
		Long: `Convert a trip itinerary into an editable day graph.

The plan command reads a trip file (loosely-typed itinerary JSON) and adapts
each day's activities into typed graph nodes: activity types are normalized,
times and durations coerced to usable values, and nodes placed on an initial
grid with a linear sequence of edges. The output is a graph.json file that
the validate, render, edit, and apply commands consume.

Malformed activity fields never fail the conversion - they degrade to
defaults so a partially-specified trip still yields an editable graph.

Use --demo to generate the built-in sample trip instead of reading a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return c.runPlan(input, output, demo)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().BoolVar(&demo, "demo", false, "use the built-in sample trip")

	return cmd
}

func (c *CLI) runPlan(input, output string, demo bool) error {
	var trip itinerary.Trip
	switch {
	case demo:
		trip = workflow.DemoTrip()
	case input != "":
		var err error
		if trip, err = itinerary.ReadTripFile(input); err != nil {
			return fmt.Errorf("load trip %s: %w", input, err)
		}
	default:
		return fmt.Errorf("either a trip file or --demo is required")
	}

	prog := newProgress(c.Logger)

	days, ok := workflow.FromTrip(trip)
	if !ok {
		printWarning("Trip %q has no days with activities", trip.ID)
		return nil
	}

	outputPath := output
	if outputPath == "" {
		if input == "" {
			outputPath = "demo.graph.json"
		} else {
			base := strings.TrimSuffix(input, filepath.Ext(input))
			outputPath = base + ".graph.json"
		}
	}

	if err := workflow.WriteDaysFile(days, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	nodes, edges := countGraph(days)
	prog.done(fmt.Sprintf("Planned %d activities across %d days", nodes, len(days)))

	printSuccess("Plan complete")
	printFile(outputPath)
	printStats(nodes, edges, false)
	printNewline()
	printNextStep("Validate", "wayfare validate "+outputPath)
	printNextStep("Edit", "wayfare edit "+outputPath)

	return nil
}

func countGraph(days []workflow.Day) (nodes, edges int) {
	for _, d := range days {
		nodes += len(d.Nodes)
		edges += len(d.Edges)
	}
	return nodes, edges
}
