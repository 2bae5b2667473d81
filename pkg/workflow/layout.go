package workflow

// =============================================================================
// Auto-Layout - Deterministic Chronological Arrangement
// =============================================================================

// Default auto-layout geometry. Overridable through LayoutOptions
// (the config file exposes spacing under [layout]).
const (
	DefaultLayoutOriginX  = 80.0
	DefaultLayoutOriginY  = 120.0
	DefaultLayoutSpacingX = 300.0
)

// LayoutOptions tunes the auto-layout geometry. Zero values select the
// package defaults.
type LayoutOptions struct {
	OriginX  float64
	OriginY  float64
	SpacingX float64
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.OriginX == 0 {
		o.OriginX = DefaultLayoutOriginX
	}
	if o.OriginY == 0 {
		o.OriginY = DefaultLayoutOriginY
	}
	if o.SpacingX == 0 {
		o.SpacingX = DefaultLayoutSpacingX
	}
	return o
}

// Layout repositions the given nodes into a single chronological row ordered
// by parsed start time, with ties broken by node ID. Only Position is
// touched; every other field is copied through unchanged.
//
// The arrangement depends solely on the node set's start times and IDs, so
// Layout is idempotent: Layout(Layout(nodes)) == Layout(nodes).
func Layout(nodes []Node, opts LayoutOptions) []Node {
	opts = opts.withDefaults()

	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}

	for slot, idx := range chronologicalOrder(out) {
		out[idx].Position = Position{
			X: opts.OriginX + float64(slot)*opts.SpacingX,
			Y: opts.OriginY,
		}
	}
	return out
}
