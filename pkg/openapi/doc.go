// Package openapi exports generated fragments as OpenAPI 3 component schemas
// using kin-openapi. Rendering hints under options move to the x-options
// extension so the output stays a valid OpenAPI document.
package openapi
