// Package render visualizes itinerary day graphs.
//
// Graphs are first converted to Graphviz DOT and then rasterized with the
// embedded Graphviz engine. Node fill colors reflect validation status so
// temporal conflicts are visible at a glance in exported images.
package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/wayfare/wayfare/pkg/workflow"
)

// Options configures DOT conversion.
type Options struct {
	// Detailed includes duration, cost, and validation messages in node
	// labels. When false, labels show only title and start time.
	Detailed bool
}

// statusFills maps validation status to a Graphviz fill color.
var statusFills = map[workflow.Status]string{
	workflow.StatusValid:   "white",
	workflow.StatusWarning: "lightyellow",
	workflow.StatusError:   "mistyrose",
}

// ToDOT converts a day graph to Graphviz DOT format. Nodes are emitted in
// chronological order and edges in insertion order, so identical graphs
// always produce identical DOT output.
func ToDOT(day workflow.Day, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph itinerary {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := append([]workflow.Node(nil), day.Nodes...)
	sort.SliceStable(nodes, func(a, b int) bool {
		if nodes[a].StartMinutes() != nodes[b].StartMinutes() {
			return nodes[a].StartMinutes() < nodes[b].StartMinutes()
		}
		return nodes[a].ID < nodes[b].ID
	})

	for _, n := range nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range day.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n workflow.Node, detailed bool) string {
	lines := []string{n.Title, fmt.Sprintf("%s · %s", n.Start, n.Type.Label())}
	if detailed {
		lines = append(lines, fmt.Sprintf("%d min · %.2f", n.DurationMinutes, n.Cost))
		lines = append(lines, n.Validation.Messages...)
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(n workflow.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := statusFills[n.Validation.Status]; ok && fill != "white" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
