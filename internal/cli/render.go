package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/pkg/cache"
	"github.com/wayfare/wayfare/pkg/render"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// Output formats for the render command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderCacheTTL bounds how long rendered artifacts stay cached.
const renderCacheTTL = 7 * 24 * time.Hour

// renderCommand creates the render command for visualizing day graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		format   string
		dayNum   int
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a day graph to DOT, SVG, or PNG",
		Long: `Render a day graph to DOT, SVG, or PNG.

Nodes are drawn in chronological order with fill colors reflecting their
validation status: white for valid, yellow for warnings, red for conflicts.
Advisory edges are drawn dashed.

Rendered SVG/PNG artifacts are cached locally keyed by graph content, so
re-rendering an unchanged graph is instant. Use --no-cache to bypass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, format, dayNum, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.day<N>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), png, dot")
	cmd.Flags().IntVarP(&dayNum, "day", "d", 1, "day number to render")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include duration, cost, and findings in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (supported: dot, svg, png)", format)
	}
}

func (c *CLI) runRender(ctx context.Context, input, output, format string, dayNum int, detailed, noCache bool) error {
	days, err := workflow.ReadDaysFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	day, ok := findDay(days, dayNum)
	if !ok {
		return fmt.Errorf("graph has no day %d", dayNum)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// Render against fresh validation so fill colors reflect current state.
	day.Nodes = workflow.Validate(day, cfg.ValidateOptions())
	dot := render.ToDOT(day, render.Options{Detailed: detailed})

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = fmt.Sprintf("%s.day%d.%s", strings.TrimSuffix(base, ".graph"), dayNum, format)
	}

	if format == formatDOT {
		if err := os.WriteFile(outputPath, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
		printSuccess("Render complete")
		printFile(outputPath)
		printStats(len(day.Nodes), len(day.Edges), false)
		return nil
	}

	artifactCache, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer artifactCache.Close()

	data, cacheHit, err := c.renderArtifact(ctx, artifactCache, dot, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	printStats(len(day.Nodes), len(day.Edges), cacheHit)

	return nil
}

// renderArtifact rasterizes DOT through the cache. Cache failures degrade to
// uncached rendering rather than failing the command.
func (c *CLI) renderArtifact(ctx context.Context, artifactCache cache.Cache, dot, format string) ([]byte, bool, error) {
	key := cache.RenderKey(dot, format)
	if data, ok, err := artifactCache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()

	var data []byte
	var err error
	switch format {
	case formatPNG:
		data, err = render.RenderPNG(ctx, dot)
	default:
		data, err = render.RenderSVG(ctx, dot)
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}
	spinner.Stop()

	if err := artifactCache.Set(ctx, key, data, renderCacheTTL); err != nil {
		c.Logger.Debug("cache artifact", "err", err)
	}
	return data, false, nil
}

func findDay(days []workflow.Day, dayNumber int) (workflow.Day, bool) {
	for _, d := range days {
		if d.DayNumber == dayNumber {
			return d, true
		}
	}
	return workflow.Day{}, false
}
