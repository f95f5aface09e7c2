package validate_test

import (
	"strings"
	"testing"

	"github.com/magurofly/magjudge/internal/validate"
)

func TestIsSubmissionID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"abc123", true},
		{"a1b2c3d4-e5f6-7890-abcd-ef1234567890", true},
		{"", false},
		{"../etc/passwd", false},
		{"foo/bar", false},
		{"foo.bar", false},
		{strings.Repeat("a", 129), false},
		{strings.Repeat("a", 128), true},
	}

	for _, tt := range tests {
		err := validate.IsSubmissionID(tt.id)
		if (err == nil) != tt.valid {
			t.Errorf("IsSubmissionID(%q) error = %v, want valid = %t", tt.id, err, tt.valid)
		}
	}
}
