package repositories

import (
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// CaptionerFactory builds a captioning backend. It returns false when the
// settings do not hold everything the backend needs.
type CaptionerFactory func(settings entities.CaptioningSettings) (domainRepos.CaptionerRepository, bool)

type namedCaptionerFactory struct {
	name    string
	factory CaptionerFactory
}

// CaptionerRegistry keeps captioning backends in priority order.
type CaptionerRegistry struct {
	factories []namedCaptionerFactory
}

// NewCaptionerRegistry creates an empty captioner registry.
func NewCaptionerRegistry() *CaptionerRegistry {
	return &CaptionerRegistry{}
}

// Register appends a backend; earlier registrations win.
func (r *CaptionerRegistry) Register(name string, factory CaptionerFactory) {
	r.factories = append(r.factories, namedCaptionerFactory{name: name, factory: factory})
}

// Select returns the first backend whose configuration is complete, or nil
// when captioning is not configured at all.
func (r *CaptionerRegistry) Select(settings entities.CaptioningSettings) domainRepos.CaptionerRepository {
	for _, f := range r.factories {
		if captioner, ok := f.factory(settings); ok {
			logger.Infof("Image captioning enabled with %s", f.name)
			return captioner
		}
		logger.Debugf("Captioning backend %s is not configured", f.name)
	}
	logger.Infof("Image captioning disabled: none of %s is configured", strings.Join(r.Names(), ", "))
	return nil
}

// Names returns the registered backend names in priority order.
func (r *CaptionerRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for _, f := range r.factories {
		names = append(names, f.name)
	}
	return names
}
