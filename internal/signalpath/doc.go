/*
Package signalpath provides a structured representation of the dotted paths
used to address solver variables, ports and signals.

A path is a dot-separated sequence of segments. Each segment is a name
optionally followed by colon-separated qualifiers, e.g.
`design.comp.Fl_O:stat:area`, where `Fl_O` is the segment name and `stat`,
`area` are its qualifiers.

All formatting and parsing of such paths is centralized here so the recorder
and the build orchestrator agree on what a well-formed address is.
*/
package signalpath
