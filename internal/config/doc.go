// Package config defines the format-agnostic architecture definition model:
// operating points plus elements whose attributes are plain cty values.
//
// A Model is turned into the arch.Architecture and build.Problem the build
// orchestrator consumes by Assemble. Concrete loaders, such as the HCL one,
// live in separate packages.
package config
