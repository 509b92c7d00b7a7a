/*
Package arch models the topology of a gas-turbine engine architecture and the
build protocol that realizes it for an external cycle solver.

An Architecture is an ordered collection of Elements. Elements are flow-path
variants (Inlet, Duct, Splitter, Mixer, BleedInter, BleedIntra, Nozzle) or
turbomachinery variants (Compressor, Burner, Turbine, Shaft). The set is
closed: only types declared in this package satisfy Element.

Every element takes part in five phases, always run in this order across the
whole architecture:

 1. Realize registers the element's solver module.
 2. Wire connects its outflow to downstream elements.
 3. DeclareParameters registers named cycle parameters.
 4. LinkDesignOffDesign fixes off-design geometry from the design point.
 5. ExportSolvedValues pushes literal values into the solved problem.

Elements and architectures compare by identity, never by value.
*/
package arch
