// Package internal assembles the application: DI wiring plus the
// aggregate the CLI entry point consumes.
package internal

import (
	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
)

// AppInternal is the assembled application handed to the CLI entry point.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns every registered CLI controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
