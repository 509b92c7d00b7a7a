// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for file discovery, parsing and the translation of
// `point` and `element` blocks into the format-agnostic config model.
package hcl
