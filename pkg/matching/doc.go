// pkg/matching/doc.go

// Package matching scores how well an adopter fits a shelter animal and
// explains the result in plain language.
//
// Everything here is pure: no I/O, no shared mutable state, safe for
// concurrent use. Out-of-range input is scored with neutral defaults
// rather than rejected; callers that want strict input use Validate.
package matching
