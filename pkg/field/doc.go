// Package field models the read-only form-field trees consumed by the schema
// pipeline. Trees are stored as flat records linked by parent indices, so
// upward lookups (root locale, inherited translation domains) are index
// walks and the structure is acyclic by construction. Definitions can be
// authored in JSON or YAML and loaded through LoadFS.
package field
