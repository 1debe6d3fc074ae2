package internal

import (
	"net/http"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/infrastructure/middleware"
)

// AppInternal holds the wired controllers and builds the HTTP handler.
type AppInternal struct {
	controllers []entities.Controller
	settings    *entities.Settings
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(controllers *[]entities.Controller, settings *entities.Settings) *AppInternal {
	return &AppInternal{
		controllers: *controllers,
		settings:    settings,
	}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Handler mounts every controller on a mux and wraps it with the middleware chain.
func (it *AppInternal) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, controller := range it.controllers {
		mux.Handle(controller.GetBind().Pattern(), controller)
	}

	middlewares := []middleware.Middleware{middleware.Recover}
	if it.settings.Server.Compression {
		middlewares = append(middlewares, middleware.Compress)
	}
	middlewares = append(middlewares, middleware.Logger, middleware.RequestID)

	return middleware.Chain(mux, middlewares...)
}
