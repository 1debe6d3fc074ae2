package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

var errNotObject = errors.New("JSON body must be an object")

// payload is a decoded JSON object whose fields are still untyped.
type payload map[string]any

// readBody reads at most limit bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, *entities.Error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, entities.ValidationError(fmt.Sprintf("Request body exceeds %d bytes", limit))
		}
		return nil, entities.ValidationError(fmt.Sprintf("Failed to read request body: %v", err))
	}
	return body, nil
}

// decodePayload parses body as a JSON object. A syntax problem is returned
// as-is so callers can word the message; a non-object yields errNotObject.
func decodePayload(body []byte) (payload, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, err
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return payload(object), nil
}

// stringFields type-checks the named fields. A required field that is absent, null
// or empty is missing; any field holding a non-string value is reported as such.
// Missing fields are reported before type errors.
func (it payload) stringFields(required []string, optional []string) (map[string]string, *entities.Error) {
	values := make(map[string]string, len(required)+len(optional))
	var missing, nonString []string

	check := func(name string, isRequired bool) {
		raw, present := it[name]
		if !present || raw == nil || raw == "" {
			if isRequired {
				missing = append(missing, name)
			}
			return
		}
		text, ok := raw.(string)
		if !ok {
			nonString = append(nonString, name)
			return
		}
		values[name] = text
	}

	for _, name := range required {
		check(name, true)
	}
	for _, name := range optional {
		check(name, false)
	}

	if len(missing) > 0 {
		return nil, entities.ValidationError("Missing required field(s): " + strings.Join(missing, ", "))
	}
	if len(nonString) > 0 {
		return nil, entities.ValidationError("Field(s) must be strings: " + strings.Join(nonString, ", "))
	}
	return values, nil
}
