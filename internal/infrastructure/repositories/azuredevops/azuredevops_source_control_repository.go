package azuredevops

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

const (
	providerName = "azuredevops"
	displayName  = "Azure DevOps"
	apiVersion   = "7.0"

	changeTypeAdd  = "add"
	changeTypeEdit = "edit"
)

// AzureDevOpsSourceControlRepository implements repositories.SourceControlRepository
// on top of the Azure Repos items and pushes APIs. "owner/name" is read as
// "project/repository" inside the organization given by the base URL.
type AzureDevOpsSourceControlRepository struct {
	baseURL      string
	token        string
	userAgent    string
	httpClient   *http.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewAzureDevOpsSourceControlRepository creates a client for the organization
// URL in settings.BaseURL (e.g. https://dev.azure.com/contoso).
func NewAzureDevOpsSourceControlRepository(
	settings entities.RepositorySettings,
) repositories.SourceControlRepository {
	return &AzureDevOpsSourceControlRepository{
		baseURL:      normalizeOrganization(settings.BaseURL),
		token:        settings.Token,
		userAgent:    settings.UserAgent,
		httpClient:   &http.Client{},
		readTimeout:  settings.ReadTimeout,
		writeTimeout: settings.WriteTimeout,
	}
}

func (it *AzureDevOpsSourceControlRepository) Name() string        { return providerName }
func (it *AzureDevOpsSourceControlRepository) DisplayName() string { return displayName }

// GetFile resolves the branch head first and reads the item at that commit.
// The head commit id is the revision token: PutFile pushes on top of it, so
// a push made by someone else in between makes Azure reject the write.
func (it *AzureDevOpsSourceControlRepository) GetFile(
	ctx context.Context,
	repo, path, ref string,
) (entities.FileRevision, error) {
	project, name, _ := entities.SplitRepo(repo)
	ctx, cancel := withTimeout(ctx, it.readTimeout)
	defer cancel()

	head, found, err := it.branchHead(ctx, "GET", project, name, ref)
	if err != nil {
		return entities.FileRevision{}, err
	}
	if !found {
		return entities.FileRevision{}, nil
	}

	endpoint := fmt.Sprintf(
		"/%s/_apis/git/repositories/%s/items?path=%s&versionDescriptor.version=%s"+
			"&versionDescriptor.versionType=commit&api-version=%s",
		url.PathEscape(project), url.PathEscape(name),
		url.QueryEscape(itemPath(path)), url.QueryEscape(head), apiVersion,
	)

	body, status, err := it.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.FileRevision{}, &repositories.TransportError{Operation: "GET", Err: err}
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return entities.FileRevision{}, nil
	default:
		return entities.FileRevision{}, &repositories.StatusError{Operation: "GET", StatusCode: status, Body: string(body)}
	}

	var item struct {
		ObjectID string `json:"objectId"`
	}
	if unmarshalErr := json.Unmarshal(body, &item); unmarshalErr != nil {
		logger.Debugf("Azure DevOps returned an unreadable item for %s/%s: %v", repo, path, unmarshalErr)
		return entities.FileRevision{Exists: true}, nil
	}
	logger.Debugf("Azure DevOps item %s/%s is blob %s at commit %s", repo, path, item.ObjectID, head)
	return entities.FileRevision{Exists: true, SHA: head}, nil
}

type refUpdate struct {
	Name        string `json:"name"`
	OldObjectID string `json:"oldObjectId"`
}

type itemDescriptor struct {
	Path string `json:"path"`
}

type newContent struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

type change struct {
	ChangeType string         `json:"changeType"`
	Item       itemDescriptor `json:"item"`
	NewContent newContent     `json:"newContent"`
}

type pushCommit struct {
	Comment string   `json:"comment"`
	Changes []change `json:"changes"`
}

type pushRequest struct {
	RefUpdates []refUpdate  `json:"refUpdates"`
	Commits    []pushCommit `json:"commits"`
}

type pushResponse struct {
	Commits []struct {
		CommitID string `json:"commitId"`
	} `json:"commits"`
	Repository struct {
		WebURL string `json:"webUrl"`
	} `json:"repository"`
}

// PutFile pushes a single-change commit. With input.SHA set the change is an
// edit anchored on that commit; otherwise it is an add on the current head.
func (it *AzureDevOpsSourceControlRepository) PutFile(
	ctx context.Context,
	input entities.FileWrite,
) (entities.CommitInfo, error) {
	project, name, _ := entities.SplitRepo(input.Repo)
	ctx, cancel := withTimeout(ctx, it.writeTimeout)
	defer cancel()

	head := input.SHA
	if head == "" {
		current, found, err := it.branchHead(ctx, "PUT", project, name, input.Branch)
		if err != nil {
			return entities.CommitInfo{}, err
		}
		if !found {
			return entities.CommitInfo{}, &repositories.StatusError{
				Operation:  "PUT",
				StatusCode: http.StatusNotFound,
				Body:       fmt.Sprintf("branch %q not found", input.Branch),
			}
		}
		head = current
	}

	changeType := changeTypeAdd
	if input.SHA != "" {
		changeType = changeTypeEdit
	}
	push := pushRequest{
		RefUpdates: []refUpdate{{Name: "refs/heads/" + input.Branch, OldObjectID: head}},
		Commits: []pushCommit{{
			Comment: input.Message,
			Changes: []change{{
				ChangeType: changeType,
				Item:       itemDescriptor{Path: itemPath(input.Path)},
				NewContent: newContent{
					Content:     base64.StdEncoding.EncodeToString(input.Content),
					ContentType: "base64encoded",
				},
			}},
		}},
	}

	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/pushes?api-version=%s",
		url.PathEscape(project), url.PathEscape(name), apiVersion)
	body, status, err := it.doRequest(ctx, http.MethodPost, endpoint, push)
	if err != nil {
		return entities.CommitInfo{}, &repositories.TransportError{Operation: "PUT", Err: err}
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return entities.CommitInfo{}, &repositories.StatusError{Operation: "PUT", StatusCode: status, Body: string(body)}
	}

	var result pushResponse
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil {
		logger.Debugf("Azure DevOps returned an unreadable push response for %s/%s: %v",
			input.Repo, input.Path, unmarshalErr)
		return entities.CommitInfo{}, nil
	}

	info := entities.CommitInfo{}
	if len(result.Commits) > 0 && result.Commits[0].CommitID != "" {
		sha := result.Commits[0].CommitID
		info.SHA = &sha
	}
	if result.Repository.WebURL != "" {
		htmlURL := fmt.Sprintf("%s?path=%s&version=GB%s",
			result.Repository.WebURL, url.QueryEscape(itemPath(input.Path)), url.QueryEscape(input.Branch))
		info.HTMLURL = &htmlURL
	}
	return info, nil
}

// branchHead returns the commit id the branch currently points at. found is
// false when the branch does not exist.
func (it *AzureDevOpsSourceControlRepository) branchHead(
	ctx context.Context,
	operation, project, name, branch string,
) (string, bool, error) {
	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/refs?filter=%s&api-version=%s",
		url.PathEscape(project), url.PathEscape(name), url.QueryEscape("heads/"+branch), apiVersion)

	body, status, err := it.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, &repositories.TransportError{Operation: operation, Err: err}
	}
	if status != http.StatusOK {
		return "", false, &repositories.StatusError{Operation: operation, StatusCode: status, Body: string(body)}
	}

	var refs struct {
		Value []struct {
			Name     string `json:"name"`
			ObjectID string `json:"objectId"`
		} `json:"value"`
	}
	if unmarshalErr := json.Unmarshal(body, &refs); unmarshalErr != nil {
		return "", false, &repositories.TransportError{
			Operation: operation,
			Err:       fmt.Errorf("failed to parse refs response: %w", unmarshalErr),
		}
	}

	// the filter is a prefix match, "main" would also return "main-old"
	for _, ref := range refs.Value {
		if ref.Name == "refs/heads/"+branch {
			return ref.ObjectID, true, nil
		}
	}
	return "", false, nil
}

// doRequest sends one request and returns the body and status. err is only
// set when no response was received.
func (it *AzureDevOpsSourceControlRepository) doRequest(
	ctx context.Context,
	method, endpoint string,
	payload any,
) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, it.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	// Basic auth with an empty user and the PAT as password
	auth := base64.StdEncoding.EncodeToString([]byte(":" + it.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if it.userAgent != "" {
		req.Header.Set("User-Agent", it.userAgent)
	}

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

func normalizeOrganization(organization string) string {
	org := strings.TrimSuffix(organization, "/")
	if org != "" && !strings.Contains(org, "://") {
		org = "https://dev.azure.com/" + org
	}
	return org
}

// itemPath makes the path absolute, the way Azure Repos reports it.
func itemPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
