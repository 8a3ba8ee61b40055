package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateSubdir checks which repository paths are accepted for
// cone-mode sparse checkout.
func TestValidateSubdir(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{"docs", false},
		{"site/docs", false},
		{"docs-v2", false},
		{"", true},            // empty
		{".", true},           // repository root
		{"..", true},          // escapes the repository
		{"../docs", true},     // escapes the repository
		{"/docs", true},       // absolute
		{"docs/", true},       // not clean
		{"docs//guide", true}, // not clean
		{`docs\guide`, true},  // backslash
		{"docs/*", true},      // pattern
		{".git", true},        // git metadata
		{"a/.git/b", true},    // git metadata
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateSubdir(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitConfigError, "remote repository is not configured")
		assert.Equal(t, ExitConfigError, err.Code)
		assert.Equal(t, "remote repository is not configured", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("exit status 128")
		err := WrapCLIError(ExitGitError, "git clone failed", inner)
		assert.Equal(t, ExitGitError, err.Code)
		assert.Equal(t, "git clone failed: exit status 128", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		err := WrapCLIError(ExitDocsNotFound, "sync failed", ErrDocsNotFound)
		assert.True(t, errors.Is(err, ErrDocsNotFound))
	})
}

// TestExitCodeOf covers the mapping from an error chain to an exit code.
func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitGeneralError, ExitCodeOf(errors.New("boom")))
	assert.Equal(t, ExitGitError, ExitCodeOf(NewCLIError(ExitGitError, "git failed")))

	// A CLIError wrapped further up the stack still decides the code.
	wrapped := fmt.Errorf("sync: %w", NewCLIError(ExitDocsNotFound, "missing"))
	assert.Equal(t, ExitDocsNotFound, ExitCodeOf(wrapped))

	// errors.Join keeps the first CLIError reachable.
	joined := errors.Join(NewCLIError(ExitFilesystemError, "copy failed"), errors.New("cleanup failed"))
	assert.Equal(t, ExitFilesystemError, ExitCodeOf(joined))
}
