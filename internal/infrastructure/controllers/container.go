package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewIngestController); err != nil {
		return err
	}
	if err := container.Provide(NewWriteToRepoController); err != nil {
		return err
	}
	if err := container.Provide(NewHealthController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	ingestController *IngestController,
	writeToRepoController *WriteToRepoController,
	healthController *HealthController,
) *[]entities.Controller {
	return &[]entities.Controller{
		ingestController,
		writeToRepoController,
		healthController,
	}
}
