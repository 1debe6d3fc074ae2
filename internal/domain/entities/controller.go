package entities

import "net/http"

// Controller is an HTTP endpoint mounted by the application router.
type Controller interface {
	GetBind() ControllerBind
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// ControllerBind describes where a controller is mounted.
type ControllerBind struct {
	Name   string
	Method string
	Path   string
}

// Pattern returns the net/http ServeMux pattern for the bind.
func (it ControllerBind) Pattern() string {
	return it.Method + " " + it.Path
}
