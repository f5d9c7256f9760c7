// Package model defines the shared template types.
package model

import "strings"

// TemplateRef identifies a specific template snapshot: a template
// identifier from the supported set plus a source ref (branch or tag)
// of the remote template repository.
type TemplateRef struct {
	// Identifier is the template name (e.g., "minimal", "default").
	Identifier string
	// Ref is the branch or tag of the remote template repository.
	Ref string
}

// CacheKey derives the deterministic cache directory name for this
// reference. Ref path separators are flattened so refs like
// "release/v2" produce a single directory component.
func (r TemplateRef) CacheKey() string {
	ref := strings.ReplaceAll(r.Ref, "/", "-")
	return r.Identifier + "-" + ref
}

// String returns a human-readable form of the reference.
func (r TemplateRef) String() string {
	if r.Ref == "" {
		return r.Identifier
	}
	return r.Identifier + "@" + r.Ref
}
