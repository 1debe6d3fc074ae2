package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers the process settings with the DIG container.
// Settings are loaded by the CLI before the container is built.
func RegisterProviders(container *dig.Container, settings *Settings) error {
	return container.Provide(func() *Settings {
		return settings
	})
}
