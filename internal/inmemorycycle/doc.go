// Package inmemorycycle provides a recording, in-memory implementation of the
// cycle solver containers.
//
// It performs the structural checks a real solver would perform while the
// model is assembled (unique module names, known ports, single-source inputs,
// unique parameters and links) and keeps everything it was told, in order, so
// the result can be inspected by tests or exported as a build plan.
package inmemorycycle
