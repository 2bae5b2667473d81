package workflow

import (
	"fmt"
	"slices"
	"sort"
)

// =============================================================================
// Validator - Per-Node Consistency Status
// =============================================================================

// DefaultCostOutlierMultiplier flags costs exceeding this multiple of the
// day's mean activity cost. It is a tunable default, not a contract - override
// it through ValidateOptions (the config file exposes it as
// validator.cost_outlier_multiplier).
const DefaultCostOutlierMultiplier = 3.0

// ValidateOptions tunes validation thresholds.
type ValidateOptions struct {
	// CostOutlierMultiplier flags a node whose cost exceeds this multiple
	// of the day's mean cost. Zero selects the default.
	CostOutlierMultiplier float64
}

func (o ValidateOptions) multiplier() float64 {
	if o.CostOutlierMultiplier > 0 {
		return o.CostOutlierMultiplier
	}
	return DefaultCostOutlierMultiplier
}

// Validate recomputes the validation status of every node in the day and
// returns the refreshed node set. It is a pure function of the day's nodes:
// the input is not mutated, and identical node sets always yield identical
// output, so validation can be replayed safely across undo/redo.
//
// Rules, in severity order:
//   - overlap: a node starting before an earlier node's computed end flags
//     both as errors, each message naming the other node's title
//   - opening hours: a scheduled window outside declared open/close
//     metadata flags a warning
//   - cost outlier: negative cost, or cost far above the day's mean,
//     flags a warning
func Validate(day Day, opts ValidateOptions) []Node {
	nodes := make([]Node, len(day.Nodes))
	for i, n := range day.Nodes {
		nodes[i] = n.Clone()
		nodes[i].Validation = Validation{Status: StatusValid}
	}

	checkOverlaps(nodes)
	checkOpeningHours(nodes)
	checkCostOutliers(nodes, opts.multiplier())

	for i := range nodes {
		sort.Strings(nodes[i].Validation.Messages)
	}
	return nodes
}

// checkOverlaps flags every pair of nodes whose scheduled windows collide.
// Nodes are compared in chronological order; both members of a colliding
// pair are marked as errors.
func checkOverlaps(nodes []Node) {
	order := chronologicalOrder(nodes)
	for i := 1; i < len(order); i++ {
		cur := &nodes[order[i]]
		for j := 0; j < i; j++ {
			earlier := &nodes[order[j]]
			if cur.StartMinutes() < earlier.EndMinutes() {
				flag(cur, StatusError, fmt.Sprintf("overlaps with %q", earlier.Title))
				flag(earlier, StatusError, fmt.Sprintf("overlaps with %q", cur.Title))
			}
		}
	}
}

// checkOpeningHours warns when a node's scheduled window falls outside its
// declared open/close metadata. Nodes without hours metadata are skipped.
func checkOpeningHours(nodes []Node) {
	for i := range nodes {
		n := &nodes[i]
		opens, closes := n.Metadata.OpenTime, n.Metadata.CloseTime
		if opens == "" && closes == "" {
			continue
		}
		if opens != "" && n.StartMinutes() < clockMinutes(opens) {
			flag(n, StatusWarning, fmt.Sprintf("starts before opening time %s", opens))
		}
		if closes != "" && n.EndMinutes() > clockMinutes(closes) {
			flag(n, StatusWarning, fmt.Sprintf("ends after closing time %s", closes))
		}
	}
}

// checkCostOutliers warns on negative costs and on costs far above the
// day's typical (mean) cost.
func checkCostOutliers(nodes []Node, multiplier float64) {
	var sum float64
	var counted int
	for _, n := range nodes {
		if n.Cost > 0 {
			sum += n.Cost
			counted++
		}
	}

	for i := range nodes {
		n := &nodes[i]
		if n.Cost < 0 {
			flag(n, StatusWarning, "negative cost")
			continue
		}
		if counted < 2 {
			continue
		}
		mean := sum / float64(counted)
		if n.Cost > mean*multiplier {
			flag(n, StatusWarning, fmt.Sprintf("cost %.2f far exceeds day average %.2f", n.Cost, mean))
		}
	}
}

// flag records a finding on a node, upgrading its status if the new severity
// is higher. Duplicate messages are dropped to keep output deterministic
// when a pair is flagged from both directions.
func flag(n *Node, status Status, message string) {
	if severity(status) > severity(n.Validation.Status) {
		n.Validation.Status = status
	}
	if !slices.Contains(n.Validation.Messages, message) {
		n.Validation.Messages = append(n.Validation.Messages, message)
	}
}

func severity(s Status) int {
	switch s {
	case StatusError:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// chronologicalOrder returns node indices sorted by parsed start time,
// breaking ties by node ID for determinism.
func chronologicalOrder(nodes []Node) []int {
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		na, nb := nodes[order[a]], nodes[order[b]]
		if na.StartMinutes() != nb.StartMinutes() {
			return na.StartMinutes() < nb.StartMinutes()
		}
		return na.ID < nb.ID
	})
	return order
}
