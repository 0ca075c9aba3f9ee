// Package transformer converts field trees into schema fragments.
//
// Enrich is the base pipeline every field kind runs first. Concrete
// transformers (Scalar, Object, Array, Choice, Currency) call it and then
// layer type-specific keys; derived kinds delegate explicitly to the
// transformer they build on. A Registry binds form type names to
// transformers, and a Scope carries the per-call state (locale, registry)
// through nested dispatch.
package transformer
