package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeText     = "text/plain"
	contentTypeMarkdown = "text/markdown"
)

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// writeJSON renders v without HTML escaping so markdown survives untouched.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeBody(w, status, contentTypeJSON, buf.Bytes())
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Error: message})
}

func writeTextError(w http.ResponseWriter, status int, message string) {
	writeBody(w, status, contentTypeText, []byte("ERROR: "+message+"\n"))
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debugf("Failed to write response: %v", err)
	}
}

// asRequestError unwraps an *entities.Error; anything else is an internal error.
func asRequestError(err error) *entities.Error {
	var requestErr *entities.Error
	if errors.As(err, &requestErr) {
		return requestErr
	}
	logger.Errorf("Unexpected error: %v", err)
	return &entities.Error{
		Type:    entities.ErrorTypeConfiguration,
		Message: "Internal server error",
		Code:    http.StatusInternalServerError,
	}
}
