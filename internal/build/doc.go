/*
Package build drives an architecture through the build protocol.

A Builder owns the ordered pipeline. For every operating condition it adds a
point to the multi-point container, registers the free-stream module, realizes
every element, registers the performance summary and wires everything. It
then declares the cycle parameters once and, when off-design points exist,
the design/off-design links. Configure pushes the condition values and the
elements' literal targets into the solved problem.

Each phase runs across the full element list before the next one starts. The
first failure aborts the build; nothing is rolled back.
*/
package build
