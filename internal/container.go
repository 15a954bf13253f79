package internal

import (
	"go.uber.org/dig"

	"github.com/zachmueller/multi-git-sub002/internal/domain/commands"
	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure"
	"github.com/zachmueller/multi-git-sub002/internal/infrastructure/controllers"
	"github.com/zachmueller/multi-git-sub002/internal/scheduler"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure -> domain entities ->
	// domain commands -> scheduler -> controllers)
	if err := infrastructure.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := container.Provide(scheduler.NewScheduler); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
