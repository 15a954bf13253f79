package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// maxSummaryLen caps the suggested commit summary, matching the usual git
// convention for subject lines.
const maxSummaryLen = 50

var kindVerbs = map[entities.ChangeKind]string{
	entities.ChangeAdded:    "Add",
	entities.ChangeModified: "Update",
	entities.ChangeDeleted:  "Remove",
	entities.ChangeRenamed:  "Rename",
}

// SuggestMessage derives a default commit summary from a status snapshot.
// It is pure and deterministic; the same status always yields the same
// suggestion, truncated to at most 50 characters.
func SuggestMessage(status *entities.RepositoryStatus) string {
	if !status.HasCommits {
		return "Initial commit"
	}

	changes := status.AllChanges()
	if len(changes) == 0 {
		return truncate("Update")
	}

	switch {
	case len(changes) == 1:
		verb := kindVerbs[changes[0].Kind]
		return truncate(fmt.Sprintf("%s %s", verb, filepath.Base(changes[0].Path)))

	case len(changes) <= 3:
		if !uniform(changes) {
			return truncate(fmt.Sprintf("Update %d files", len(changes)))
		}
		names := make([]string, len(changes))
		for i, change := range changes {
			names[i] = filepath.Base(change.Path)
		}
		return truncate(fmt.Sprintf("%s %s", kindVerbs[changes[0].Kind], strings.Join(names, ", ")))

	default:
		return truncate(fmt.Sprintf("%s %d files", dominantVerb(changes), len(changes)))
	}
}

// dominantVerb picks the verb for the majority change kind, falling back
// to "Update" when no kind holds a strict majority.
func dominantVerb(changes []entities.FileChange) string {
	counts := make(map[entities.ChangeKind]int)
	for _, change := range changes {
		counts[change.Kind]++
	}

	for kind, count := range counts {
		if count > len(changes)/2 {
			return kindVerbs[kind]
		}
	}
	return "Update"
}

func uniform(changes []entities.FileChange) bool {
	for _, change := range changes[1:] {
		if change.Kind != changes[0].Kind {
			return false
		}
	}
	return true
}

func truncate(summary string) string {
	if len(summary) <= maxSummaryLen {
		return summary
	}
	return summary[:maxSummaryLen-3] + "..."
}
