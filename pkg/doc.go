// Package pkg provides the core libraries for Wayfare itinerary editing.
//
// # Overview
//
// Wayfare turns travel itineraries into editable day-by-day workflow graphs:
// activities become nodes, suggested ordering becomes edges, and the edited
// graph is reconciled back into a canonical schedule. The pkg directory is
// organized into four main areas:
//
//  1. [workflow] - Domain logic (trip adaptation, validation, layout, reconciliation)
//  2. [editor] - Mutation surface (graph edits, undo/redo history, move gestures)
//  3. [infra] - Infrastructure (sessions, schedule stores, render cache, config)
//  4. [render] - DOT generation and Graphviz rasterization
//
// # Architecture
//
// The typical data flow through Wayfare:
//
//	Trip Itinerary (JSON)
//	         ↓
//	workflow.FromTrip        → day graphs with defaults coerced
//	         ↓
//	editor.Editor            → mutations, validation refresh, undo/redo
//	         ↓
//	workflow.Reconcile       → canonical schedule
//	         ↓
//	schedule.Store           → persisted per trip
//
// Rendering branches off the edited graph: render.ToDOT produces Graphviz
// source, and render.RenderSVG / render.RenderPNG rasterize it, with results
// kept in a content-addressed cache.
//
// The HTTP editor API (internal/server) and the terminal UI (internal/cli)
// are both thin shells over the editor package; sessions carry editor state
// between stateless requests via the session package.
package pkg
