// Package naming assigns unique Terraform resource names to discovered
// resources within a generation run.
package naming

import (
	"fmt"
	"regexp"
)

var invalidChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
var startsWithLetter = regexp.MustCompile(`^[a-zA-Z]`)

// Sanitize rewrites a raw name into a valid Terraform identifier: characters
// outside [a-zA-Z0-9_-] become underscores, and a "resource_" prefix is added
// when the result does not start with a letter. Sanitizing an already
// sanitized name is a no-op.
func Sanitize(name string) string {
	sanitized := invalidChars.ReplaceAllString(name, "_")
	if !startsWithLetter.MatchString(sanitized) {
		sanitized = "resource_" + sanitized
	}
	return sanitized
}

// Resolver hands out collision-free resource names. Uniqueness is global to
// the generation run, not per resource type: an instance and a VPC that share
// a Name tag get distinct symbolic names. A Resolver holds state for a single
// run and is not safe for concurrent use.
type Resolver struct {
	assigned map[string]bool
}

func NewResolver() *Resolver {
	return &Resolver{assigned: map[string]bool{}}
}

// Resolve returns a name unique within the run. The preferred name is the
// resource's Name tag when present, otherwise its identifier. Collisions get
// a numeric suffix, so three resources named "web" become web, web_1, web_2.
func (r *Resolver) Resolve(id string, tags map[string]string) string {
	preferred := id
	if name, ok := tags["Name"]; ok && name != "" {
		preferred = name
	}

	base := Sanitize(preferred)

	candidate := base
	for suffix := 1; r.assigned[candidate]; suffix++ {
		candidate = fmt.Sprintf("%s_%d", base, suffix)
	}

	r.assigned[candidate] = true
	return candidate
}
