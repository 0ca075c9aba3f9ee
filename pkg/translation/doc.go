// Package translation resolves human-readable schema text. A Catalog holds
// messages per locale and domain, walking BCP 47 parent locales before the
// configured fallback locale. The Resolver layers the form-specific rules on
// top: when a lookup in the field-scoped domain hands the input back
// unchanged, it retries the form-wide domain, and any non-string catalog
// value resolves to the empty string.
package translation
