// Package cycle defines the boundary between an engine architecture and the
// external thermodynamic cycle solver.
//
// Nothing here computes flows. The interfaces describe the three containers an
// architecture is realized into: a per-point flow/mechanical container (Cycle),
// the multi-point container holding cycle parameters and design/off-design
// links (MultiPoint), and the solved-problem handle used to push literal values
// (Problem). Port names, unit tags and path helpers used by both sides of the
// boundary live here too, so they are spelled in exactly one place.
package cycle
