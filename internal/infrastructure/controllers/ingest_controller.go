package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rios0rios0/docbridge/internal/domain/commands"
	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

type ingestResponse struct {
	Status string                 `json:"status"`
	Data   *entities.IngestResult `json:"data"`
}

// IngestController handles POST /api/process_file.
type IngestController struct {
	command      commands.Ingest
	maxBodyBytes int64
}

// NewIngestController creates a new IngestController.
func NewIngestController(command commands.Ingest, settings *entities.Settings) *IngestController {
	return &IngestController{
		command:      command,
		maxBodyBytes: settings.Server.MaxBodyBytes,
	}
}

// GetBind returns the route of the process_file endpoint.
func (it *IngestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Name:   "process_file",
		Method: http.MethodPost,
		Path:   "/api/process_file",
	}
}

// ServeHTTP converts a base64 document to markdown. The response is
// text/markdown unless ?format=json asks for the JSON envelope.
func (it *IngestController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format := entities.ParseOutputFormat(r.URL.Query().Get("format"))
	fail := func(requestErr *entities.Error) {
		if format == entities.FormatJSON {
			writeJSONError(w, requestErr.Code, requestErr.Message)
			return
		}
		writeTextError(w, requestErr.Code, requestErr.Message)
	}

	body, readErr := readBody(w, r, it.maxBodyBytes)
	if readErr != nil {
		fail(readErr)
		return
	}
	if len(body) == 0 {
		fail(entities.ValidationError("Empty request body"))
		return
	}

	fields, err := decodePayload(body)
	if err != nil {
		if errors.Is(err, errNotObject) {
			fail(entities.ValidationError(err.Error()))
			return
		}
		fail(entities.ValidationError(fmt.Sprintf("Body must be JSON (%v)", err)))
		return
	}

	values, fieldErr := fields.stringFields(
		[]string{"filename", "content_base64"},
		[]string{"content_type"},
	)
	if fieldErr != nil {
		fail(fieldErr)
		return
	}

	result, err := it.command.Execute(r.Context(), commands.IngestOptions{
		Filename:      values["filename"],
		ContentBase64: values["content_base64"],
		ContentType:   values["content_type"],
	})
	if err != nil {
		fail(asRequestError(err))
		return
	}

	if format == entities.FormatJSON {
		writeJSON(w, http.StatusOK, ingestResponse{Status: "ok", Data: result})
		return
	}
	writeBody(w, http.StatusOK, contentTypeMarkdown, []byte(result.Markdown))
}
