package entities

// ChangeKind classifies a single file change reported by the VCS.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

// FileChange is one changed path with its classification. Renames are
// recorded under the new path with OldPath carrying the origin.
type FileChange struct {
	Path    string
	Kind    ChangeKind
	OldPath string // set only for renames
}

// RepositoryStatus is the transient snapshot of a working tree, recomputed
// on every status query and never persisted. The three file lists are
// disjoint: a path appears in exactly one of them per snapshot.
type RepositoryStatus struct {
	RepositoryID   string
	RepositoryName string
	Path           string

	// Branch is nil on a detached HEAD.
	Branch *string

	Staged    []FileChange
	Unstaged  []FileChange
	Untracked []FileChange

	// Unpushed is the number of local commits not on the upstream;
	// RemoteAhead the number of upstream commits not yet local.
	Unpushed    int
	RemoteAhead int

	// HasCommits is false for a repository with no commits yet.
	HasCommits bool

	LastFetchState FetchState
}

// AllChanges returns the combined staged, unstaged and untracked changes.
func (s *RepositoryStatus) AllChanges() []FileChange {
	out := make([]FileChange, 0, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))
	out = append(out, s.Staged...)
	out = append(out, s.Unstaged...)
	out = append(out, s.Untracked...)
	return out
}

// IsClean reports whether the working tree has no changes of any category.
func (s *RepositoryStatus) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// BranchName returns the branch or a placeholder for a detached HEAD.
func (s *RepositoryStatus) BranchName() string {
	if s.Branch == nil {
		return "(detached)"
	}
	return *s.Branch
}
