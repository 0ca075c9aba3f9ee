// Package orchestrator wires the field tree loader, the transformer registry,
// decorators, fragment transformers and validation behind a single Generate
// call.
package orchestrator
