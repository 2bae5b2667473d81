package render

import (
	"strings"
	"testing"

	"github.com/wayfare/wayfare/pkg/workflow"
)

func testDay() workflow.Day {
	return workflow.Day{
		DayNumber: 1,
		Nodes: []workflow.Node{
			{
				ID: "b", Type: workflow.TypeAttraction, Title: "Museum",
				Start: "10:00", DurationMinutes: 120, Cost: 12,
				Validation: workflow.Validation{Status: workflow.StatusWarning, Messages: []string{"ends after closing time 11:00"}},
			},
			{
				ID: "a", Type: workflow.TypeMeal, Title: "Breakfast",
				Start: "08:00", DurationMinutes: 45, Cost: 8.5,
				Validation: workflow.Validation{Status: workflow.StatusValid},
			},
		},
		Edges: []workflow.Edge{{Source: "a", Target: "b"}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDay(), Options{})

	for _, want := range []string{
		"digraph itinerary {",
		"rankdir=LR",
		`"a" [`,
		`"b" [`,
		`"a" -> "b" [style=dashed]`,
		"Breakfast",
		"Museum",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Chronological node order: breakfast before museum despite slice order.
	if strings.Index(dot, "Breakfast") > strings.Index(dot, "Museum") {
		t.Error("nodes not emitted chronologically")
	}
}

func TestToDOTStatusFills(t *testing.T) {
	dot := ToDOT(testDay(), Options{})

	if !strings.Contains(dot, `fillcolor="lightyellow"`) {
		t.Error("warning node not filled yellow")
	}
	// Valid nodes keep the default fill; no explicit attribute is emitted.
	if strings.Count(dot, "fillcolor=\"") != 1 {
		t.Errorf("unexpected fill attributes:\n%s", dot)
	}

	day := testDay()
	day.Nodes[0].Validation.Status = workflow.StatusError
	if dot := ToDOT(day, Options{}); !strings.Contains(dot, `fillcolor="mistyrose"`) {
		t.Error("error node not filled red")
	}
}

func TestToDOTDetailed(t *testing.T) {
	plain := ToDOT(testDay(), Options{})
	detailed := ToDOT(testDay(), Options{Detailed: true})

	if strings.Contains(plain, "ends after closing") {
		t.Error("plain labels include findings")
	}
	if !strings.Contains(detailed, "ends after closing") {
		t.Error("detailed labels missing findings")
	}
	if !strings.Contains(detailed, "120 min") {
		t.Error("detailed labels missing duration")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	first := ToDOT(testDay(), Options{Detailed: true})
	second := ToDOT(testDay(), Options{Detailed: true})
	if first != second {
		t.Error("identical days produced different DOT")
	}
}
