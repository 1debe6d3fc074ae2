package captioning

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

var errEmptyCaption = errors.New("captioning backend returned no choices")

// OpenAICaptionerRepository describes images through the chat completions API.
// It serves both OpenAI and Azure OpenAI; only the client options differ.
type OpenAICaptionerRepository struct {
	name   string
	client openai.Client
	model  string
	prompt string
}

// NewOpenAICaptionerRepository builds a captioner for api.openai.com (or a
// compatible base URL). It is unavailable without an API key.
func NewOpenAICaptionerRepository(
	settings entities.CaptioningSettings,
) (repositories.CaptionerRepository, bool) {
	cfg := settings.OpenAI
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, false
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAICaptionerRepository{
		name:   "openai",
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		prompt: settings.Prompt,
	}, true
}

// NewAzureOpenAICaptionerRepository builds a captioner for an Azure OpenAI
// deployment. Endpoint, key and deployment are all required.
func NewAzureOpenAICaptionerRepository(
	settings entities.CaptioningSettings,
) (repositories.CaptionerRepository, bool) {
	cfg := settings.Azure
	if cfg.Endpoint == "" || cfg.APIKey == "" || cfg.Deployment == "" {
		return nil, false
	}

	client := openai.NewClient(
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	return &OpenAICaptionerRepository{
		name:   "azure_openai",
		client: client,
		model:  cfg.Deployment, // Azure routes by deployment name
		prompt: settings.Prompt,
	}, true
}

func (it *OpenAICaptionerRepository) Name() string { return it.name }

// Caption sends the image as a data URL alongside the prompt and returns the
// model's answer verbatim.
func (it *OpenAICaptionerRepository) Caption(
	ctx context.Context,
	data []byte,
	mimeType, filename string,
) (string, error) {
	instruction := fmt.Sprintf("Write a detailed caption for the image %q. %s", filename, it.prompt)
	imageURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	completion, err := it.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(it.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(instruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: imageURL}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s caption request failed: %w", it.name, err)
	}
	if len(completion.Choices) == 0 {
		return "", errEmptyCaption
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
