package controllers

import (
	"net/http"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

// HealthController handles GET /api/health for host liveness checks.
type HealthController struct {
	provider string
}

func NewHealthController(settings *entities.Settings) *HealthController {
	return &HealthController{provider: settings.Repository.Provider}
}

func (it *HealthController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Name:   "health",
		Method: http.MethodGet,
		Path:   "/api/health",
	}
}

func (it *HealthController) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: it.provider})
}
