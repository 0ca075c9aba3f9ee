// Package validation checks generated fragments before they are handed to a
// renderer: the fragment must compile, defaults must satisfy their own
// fragment and enum titles must match enum values.
package validation
