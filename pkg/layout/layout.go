// Package layout provides the layout resolver consulted when a field does not
// override options.layout itself.
package layout

import "strings"

// DefaultName is the layout used when nothing is configured.
const DefaultName = "vertical"

// Resolver returns the process-wide default layout.
type Resolver interface {
	DefaultLayout() string
}

// Static is a Resolver returning a fixed layout name. The zero value resolves
// to DefaultName.
type Static string

// DefaultLayout implements Resolver.
func (s Static) DefaultLayout() string {
	if name := strings.TrimSpace(string(s)); name != "" {
		return name
	}
	return DefaultName
}
