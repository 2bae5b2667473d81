package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// applyCommand creates the apply command for reconciling graphs into schedules.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		output  string
		tripID  string
		toStore bool
	)

	cmd := &cobra.Command{
		Use:   "apply [graph.json]",
		Short: "Reconcile a day graph into a canonical schedule",
		Long: `Reconcile a day graph into a canonical schedule.

The apply command projects the edited graph back into schedule form:
activities sorted chronologically by start time, with display fields
(description, hours, coordinates) derived from node data. Edges never
influence the ordering - they are advisory only.

By default the schedule is written to a JSON file. With --store it is
saved to the configured schedule store (memory or MongoDB) instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd.Context(), args[0], output, tripID, toStore)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.schedule.json)")
	cmd.Flags().StringVar(&tripID, "trip-id", "", "trip ID for the schedule (default: derived from input filename)")
	cmd.Flags().BoolVar(&toStore, "store", false, "save to the configured schedule store instead of a file")

	return cmd
}

func (c *CLI) runApply(ctx context.Context, input, output, tripID string, toStore bool) error {
	days, err := workflow.ReadDaysFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	if tripID == "" {
		base := filepath.Base(input)
		tripID = strings.TrimSuffix(strings.TrimSuffix(base, filepath.Ext(base)), ".graph")
	}

	prog := newProgress(c.Logger)
	sched := workflow.Reconcile(days, workflow.ReconcileOptions{TripID: tripID})
	prog.done(fmt.Sprintf("Reconciled %d activities", sched.ActivityCount()))

	if toStore {
		return c.applyToStore(ctx, sched)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = strings.TrimSuffix(base, ".graph") + ".schedule.json"
	}

	if err := itinerary.WriteScheduleFile(sched, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Schedule applied")
	printFile(outputPath)
	printDetail("Trip: %s · %d days · %d activities", sched.TripID, len(sched.Days), sched.ActivityCount())

	return nil
}

func (c *CLI) applyToStore(ctx context.Context, sched itinerary.Schedule) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	store, err := newScheduleStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.Save(ctx, sched); err != nil {
		return fmt.Errorf("save schedule %s: %w", sched.TripID, err)
	}

	printSuccess("Schedule saved to %s store", cfg.Store.Backend)
	printDetail("Trip: %s · %d days · %d activities", sched.TripID, len(sched.Days), sched.ActivityCount())
	return nil
}
