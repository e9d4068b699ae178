package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values. Log stays
// nil until configuration has been loaded, errors before that go to stderr.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
