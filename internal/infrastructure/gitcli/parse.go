package gitcli

import (
	"strconv"
	"strings"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// parseStatus splits `git status --porcelain=v1` output into the three
// disjoint change lists. Each line carries a two-character code, the first
// character for the index state and the second for the working tree. A
// path with both index and working-tree changes is recorded once, under
// staged, so the lists stay disjoint.
func parseStatus(output string) (staged, unstaged, untracked []entities.FileChange) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}

		code := line[:2]
		path := line[3:]

		if code == "??" {
			untracked = append(untracked, entities.FileChange{
				Path: path,
				Kind: entities.ChangeAdded,
			})
			continue
		}

		indexState := code[0]
		treeState := code[1]

		if indexState != ' ' {
			staged = append(staged, newChange(indexState, path))
			continue
		}
		if treeState != ' ' {
			unstaged = append(unstaged, newChange(treeState, path))
		}
	}
	return staged, unstaged, untracked
}

// newChange builds a FileChange from a single porcelain state character.
// Renames arrive as "old -> new" and are recorded under the new path.
func newChange(state byte, path string) entities.FileChange {
	change := entities.FileChange{Path: path, Kind: kindOf(state)}
	if change.Kind == entities.ChangeRenamed {
		if old, renamed, ok := strings.Cut(path, " -> "); ok {
			change.OldPath = old
			change.Path = renamed
		}
	}
	return change
}

func kindOf(state byte) entities.ChangeKind {
	switch state {
	case 'A', 'C':
		return entities.ChangeAdded
	case 'D':
		return entities.ChangeDeleted
	case 'R':
		return entities.ChangeRenamed
	default:
		// M, T, U and anything new git grows
		return entities.ChangeModified
	}
}

// parseBranch interprets `git branch --show-current` output. Empty output
// means detached HEAD, represented as a nil branch.
func parseBranch(output string) *string {
	branch := strings.TrimSpace(output)
	if branch == "" {
		return nil
	}
	return &branch
}

// parseCount reads a single integer from `git rev-list --count` output.
func parseCount(output string) int {
	n, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return 0
	}
	return n
}
