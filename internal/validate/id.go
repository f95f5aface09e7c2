// Package validate holds small IsXxx(value) error validators, in the style
// of the teacher's shared/validate package.
package validate

import (
	"fmt"
	"regexp"
)

// maxSubmissionIDLength bounds the id so it is always safe to use as a
// single filesystem path component alongside other fixed-length suffixes.
const maxSubmissionIDLength = 128

var submissionIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// IsSubmissionID reports whether id is a safe, opaque single path component.
//
// It accepts both plain alphanumeric identifiers and UUID-hyphenated forms
// (the two shapes observed across revisions of the source this was distilled
// from), but rejects anything that could traverse a path ("..", "/", empty)
// or that is unreasonably long.
func IsSubmissionID(id string) error {
	if id == "" {
		return fmt.Errorf("submission id must not be empty")
	}

	if len(id) > maxSubmissionIDLength {
		return fmt.Errorf("submission id must not exceed %d characters", maxSubmissionIDLength)
	}

	if !submissionIDPattern.MatchString(id) {
		return fmt.Errorf("submission id must match %s", submissionIDPattern.String())
	}

	return nil
}
