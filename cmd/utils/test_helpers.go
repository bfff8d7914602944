package utils

import (
	"os"
	"strings"
	"testing"
)

// ClearTestEnvironment blanks every env var for the duration of the test, so config options only
// see what the test sets.
func ClearTestEnvironment(t *testing.T) {
	for _, env := range os.Environ() {
		key := env[:strings.Index(env, "=")]
		t.Setenv(key, "")
	}
}
