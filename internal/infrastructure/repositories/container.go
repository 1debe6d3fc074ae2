package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/docbridge/internal/domain/repositories"
	adoRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/azuredevops"
	captionRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/captioning"
	ghRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/gitlab"
	mdRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/markdown"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(entities.ProviderGitHub, ghRepo.NewGitHubSourceControlRepository)
		reg.Register(entities.ProviderGitLab, glRepo.NewGitLabSourceControlRepository)
		reg.Register(entities.ProviderAzureDevOps, adoRepo.NewAzureDevOpsSourceControlRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register captioner registry in priority order
	if err := container.Provide(func() *CaptionerRegistry {
		reg := NewCaptionerRegistry()
		reg.Register("azure_openai", captionRepo.NewAzureOpenAICaptionerRepository)
		reg.Register("openai", captionRepo.NewOpenAICaptionerRepository)
		return reg
	}); err != nil {
		return err
	}

	// Bind the configured provider
	if err := container.Provide(func(
		reg *ProviderRegistry,
		settings *entities.Settings,
	) (domainRepos.SourceControlRepository, error) {
		return reg.Get(settings.Repository)
	}); err != nil {
		return err
	}

	// Bind the extractor with the selected captioning backend
	if err := container.Provide(func(
		reg *CaptionerRegistry,
		settings *entities.Settings,
	) domainRepos.ExtractorRepository {
		captioner := reg.Select(settings.Extraction.Captioning)
		return mdRepo.NewMarkdownExtractorRepository(settings.Extraction, captioner)
	}); err != nil {
		return err
	}

	return nil
}
