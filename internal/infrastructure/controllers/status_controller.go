package controllers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/domain/repositories"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// StatusController handles the "status" subcommand: a live snapshot of
// every managed repository (or one, when named).
type StatusController struct {
	vcs      repositories.VCSRepository
	settings repositories.SettingsRepository
}

// NewStatusController creates a new StatusController.
func NewStatusController(
	vcs repositories.VCSRepository,
	settings repositories.SettingsRepository,
) *StatusController {
	return &StatusController{vcs: vcs, settings: settings}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status [id|name]",
		Short: "Show working-tree status of managed repositories",
		Long: `Query git for a fresh status snapshot of each managed repository:
current branch, staged/unstaged/untracked counts, unpushed commits and
commits waiting on the remote.`,
	}
}

// Execute prints the status table.
func (it *StatusController) Execute(_ *cobra.Command, args []string) {
	ctx := context.Background()

	repos := it.settings.ListRepositories()
	if len(args) > 0 {
		repo, ok := it.settings.FindRepository(args[0])
		if !ok {
			logger.Errorf("No managed repository matches %q", args[0])
			return
		}
		repos = []entities.RepositoryConfig{repo}
	}
	if len(repos) == 0 {
		fmt.Println("No repositories are managed yet. Use \"multigit add <path>\".")
		return
	}

	tbl := table.New("NAME", "BRANCH", "STAGED", "UNSTAGED", "UNTRACKED", "UNPUSHED", "BEHIND", "LAST FETCH")
	tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
		return headerStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithPadding(2)

	for _, repo := range repos {
		status, err := it.vcs.GetStatus(ctx, repo)
		if err != nil {
			tbl.AddRow(repo.Name, "-", "-", "-", "-", "-", "-", fmt.Sprintf("error: %v", err))
			continue
		}
		tbl.AddRow(
			repo.Name,
			status.BranchName(),
			len(status.Staged),
			len(status.Unstaged),
			len(status.Untracked),
			status.Unpushed,
			status.RemoteAhead,
			lastFetchCell(repo),
		)
	}
	tbl.Print()
}

func lastFetchCell(repo entities.RepositoryConfig) string {
	switch repo.LastFetchState {
	case "":
		return "never"
	case entities.FetchFailed:
		return "error"
	default:
		return fmt.Sprintf("%s (%s)", repo.LastFetchState, repo.LastFetchAt.Format("15:04:05"))
	}
}
