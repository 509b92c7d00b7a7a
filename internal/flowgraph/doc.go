// Package flowgraph indexes the main flow path of an architecture as a
// directed graph keyed by element name.
//
// It answers the neighbourhood questions the build needs (which element feeds
// a burner, which elements have no upstream) and detects closed flow loops.
// Bleed relations are secondary flows and are not part of the graph.
package flowgraph
