// Package judgelog sets up the process-wide structured logger used by the
// daemon and submission worker. Grounded on the teacher's
// lxd-export/core/logger.SafeLogger and the lxd-user daemon's logrus setup;
// kept deliberately separate from internal/sandbox, which must not link a
// logging stack before it drops privilege.
package judgelog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus.Logger configured the way the teacher's daemons
// configure theirs: full timestamps, text formatting, info level by default.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(os.Stdout)

	return log
}

// WithSubmission returns an entry pre-populated with the submission id, the
// way the lxd-user proxy pre-populates uid/gid/pid on every connection log.
func WithSubmission(log *logrus.Logger, submissionID string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"submission_id": submissionID})
}
