package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rios0rios0/docbridge/internal/domain/commands"
	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

type writeToRepoResponse struct {
	Status    string               `json:"status"`
	Action    entities.WriteAction `json:"action"`
	Repo      string               `json:"repo"`
	Path      string               `json:"path"`
	Branch    string               `json:"branch"`
	CommitSHA *string              `json:"commit_sha"`
	HTMLURL   *string              `json:"html_url"`
}

// WriteToRepoController handles POST /api/write_to_repo. Responses are always JSON.
type WriteToRepoController struct {
	command      commands.UpsertFile
	maxBodyBytes int64
}

// NewWriteToRepoController creates a new WriteToRepoController.
func NewWriteToRepoController(command commands.UpsertFile, settings *entities.Settings) *WriteToRepoController {
	return &WriteToRepoController{
		command:      command,
		maxBodyBytes: settings.Server.MaxBodyBytes,
	}
}

// GetBind returns the route of the write_to_repo endpoint.
func (it *WriteToRepoController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Name:   "write_to_repo",
		Method: http.MethodPost,
		Path:   "/api/write_to_repo",
	}
}

// ServeHTTP creates or updates one file in the configured repository host.
func (it *WriteToRepoController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, readErr := readBody(w, r, it.maxBodyBytes)
	if readErr != nil {
		writeJSONError(w, readErr.Code, readErr.Message)
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	fields, err := decodePayload(body)
	if err != nil {
		if errors.Is(err, errNotObject) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}

	values, fieldErr := fields.stringFields(
		[]string{"repo", "path", "content"},
		[]string{"branch", "commit_message"},
	)
	if fieldErr != nil {
		writeJSONError(w, fieldErr.Code, fieldErr.Message)
		return
	}

	result, err := it.command.Execute(r.Context(), entities.RepoWriteRequest{
		Repo:          values["repo"],
		Path:          values["path"],
		Content:       values["content"],
		Branch:        values["branch"],
		CommitMessage: values["commit_message"],
	})
	if err != nil {
		requestErr := asRequestError(err)
		writeJSONError(w, requestErr.Code, requestErr.Message)
		return
	}

	writeJSON(w, http.StatusOK, writeToRepoResponse{
		Status:    "ok",
		Action:    result.Action,
		Repo:      result.Repo,
		Path:      result.Path,
		Branch:    result.Branch,
		CommitSHA: result.CommitSHA,
		HTMLURL:   result.HTMLURL,
	})
}
