// Package schema defines Fragment, the JSON-Schema-like mapping emitted for
// each field, along with its reserved keys and post-processing decorators.
// Fragments carry rendering hints under the options key (widget, layout,
// attr) that UI layers read to pick controls.
package schema
