package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewIngestCommand); err != nil {
		return err
	}
	if err := container.Provide(NewUpsertFileCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *IngestCommand) Ingest {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *UpsertFileCommand) UpsertFile {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
