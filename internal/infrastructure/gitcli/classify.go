package gitcli

import (
	"strings"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// classification rules are evaluated in order; the first matching group
// wins. Matching is case-insensitive substring search over the combined
// stdout+stderr of the failed command.

var authPhrases = []string{
	"authentication failed",
	"permission denied",
	"could not read username",
	"could not read password",
	"invalid username or password",
	"403",
}

var networkPhrases = []string{
	"could not resolve host",
	"connection refused",
	"network is unreachable",
	"no route to host",
	"connection timed out",
	"failed to connect",
	"operation timed out",
}

var noUpstreamPhrases = []string{
	"no upstream",
	"set-upstream",
	"no configured push destination",
}

var hookPhrases = []string{
	"pre-commit hook",
	"commit-msg hook",
	"pre-push hook",
	"hook declined",
	".git/hooks/",
}

var nothingToCommitPhrases = []string{
	"nothing to commit",
	"no changes added to commit",
	"nothing added to commit",
}

// classifyFailure maps the output of a failed commit/push/fetch to the
// error taxonomy. Hook output is preserved verbatim; the catch-all detail
// is sanitized because callers may log it as-is.
func classifyFailure(result entities.ProcessResult) error {
	output := result.Stdout + "\n" + result.Stderr
	lowered := strings.ToLower(output)

	if containsAny(lowered, authPhrases) {
		return &entities.AuthenticationError{Detail: Sanitize(strings.TrimSpace(result.Stderr))}
	}
	if containsAny(lowered, networkPhrases) {
		return &entities.NetworkError{Detail: Sanitize(strings.TrimSpace(result.Stderr))}
	}
	if containsAny(lowered, noUpstreamPhrases) {
		return &entities.NoUpstreamError{Detail: strings.TrimSpace(result.Stderr)}
	}
	if containsAny(lowered, hookPhrases) {
		return &entities.HookFailureError{Output: strings.TrimSpace(output)}
	}
	if containsAny(lowered, nothingToCommitPhrases) {
		return &entities.NothingToCommitError{}
	}

	return &entities.UnknownVCSError{Detail: Sanitize(strings.TrimSpace(output))}
}

func containsAny(haystack string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(haystack, phrase) {
			return true
		}
	}
	return false
}
