package controllers

import (
	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []interface{}{
		NewAddController,
		NewRemoveController,
		NewStatusController,
		NewFetchController,
		NewPublishController,
		NewDaemonController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	addController *AddController,
	removeController *RemoveController,
	statusController *StatusController,
	fetchController *FetchController,
	publishController *PublishController,
	daemonController *DaemonController,
) *[]entities.Controller {
	return &[]entities.Controller{
		addController,
		removeController,
		statusController,
		fetchController,
		publishController,
		daemonController,
	}
}
