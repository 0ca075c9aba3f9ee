// Package widgets implements the widget resolver: it maps a field's block
// naming metadata (and any registered matchers) onto the options.widget hint
// renderers use to pick a UI control.
package widgets
