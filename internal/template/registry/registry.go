// Package registry holds the closed set of supported project templates.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Template describes a supported project template.
type Template struct {
	// Identifier is the template name used in CLI flags and cache keys.
	Identifier string
	// Description is shown in the interactive template selection prompt.
	Description string
}

// templates is the supported set. Identifiers must match the
// templates/<identifier> directories of the remote template repository.
var templates = map[string]Template{
	"minimal": {
		Identifier:  "minimal",
		Description: "Bare strata project with a single collection",
	},
	"default": {
		Identifier:  "default",
		Description: "Standard strata project with example collections and seeds",
	},
}

// DefaultIdentifier is the template used when the caller does not choose one.
const DefaultIdentifier = "default"

// UnknownTemplateError indicates a requested template identifier is not
// in the supported set. It is returned before any network or disk I/O.
type UnknownTemplateError struct {
	// Identifier is the unsupported identifier that was requested.
	Identifier string
	// Known lists the supported identifiers.
	Known []string
}

// Error implements the error interface.
func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q (available: %s)",
		e.Identifier, strings.Join(e.Known, ", "))
}

// Lookup returns the template for an identifier, or an
// UnknownTemplateError if the identifier is not supported.
func Lookup(identifier string) (Template, error) {
	t, ok := templates[identifier]
	if !ok {
		return Template{}, &UnknownTemplateError{
			Identifier: identifier,
			Known:      Identifiers(),
		}
	}
	return t, nil
}

// Identifiers returns the supported template identifiers in sorted order.
func Identifiers() []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns all supported templates sorted by identifier.
func All() []Template {
	all := make([]Template, 0, len(templates))
	for _, id := range Identifiers() {
		all = append(all, templates[id])
	}
	return all
}
