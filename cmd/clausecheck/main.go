// Command clausecheck analyses contracts against obligation lists.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/ai"
	cachemem "github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/cache/memory"
	configfile "github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/language/whatlang"
	"github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/translate/gtx"
	indexmem "github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/clausecheck-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clausecheck-cli/internal/core/services"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	settings := loadSettings(configStore)

	analysisService, cleanup, err := buildAnalysisService(settings)
	if err != nil {
		return err
	}
	defer cleanup()

	return cli.Execute(cli.Deps{
		Analysis: analysisService,
		Config:   configStore,
		Version:  version,
	})
}

// buildAnalysisService assembles the pipeline from configured providers.
// Returns a nil service when no AI providers are configured; commands
// that need it report that instead of main failing outright.
func buildAnalysisService(settings domain.AppSettings) (driving.AnalysisService, func(), error) {
	noop := func() {}

	embeddingService, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, noop, err
	}
	if embeddingService == nil {
		logger.Warn("No embedding provider configured; analysis is unavailable")
		return nil, noop, nil
	}

	llmService, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		embeddingService.Close()
		return nil, noop, err
	}
	if llmService == nil {
		embeddingService.Close()
		logger.Warn("No LLM provider configured; analysis is unavailable")
		return nil, noop, nil
	}

	// Cloud providers get client-side throttling so batch judging
	// cannot burst past their rate limits.
	if !settings.LLM.Provider.IsLocal() {
		llmService = ai.NewRateLimitedLLM(llmService, ai.DefaultRequestsPerSecond)
	}

	cleanup := func() {
		llmService.Close()
		embeddingService.Close()
	}

	extractor := services.NewKeywordExtractor(llmService)
	analysisService := services.NewAnalysisService(
		services.NewNormalizer(whatlang.New(), gtx.New(gtx.Config{}), llmService),
		services.NewSegmenter(
			services.WithChunkSize(settings.Analysis.ChunkSize),
			services.WithOverlap(settings.Analysis.ChunkOverlap),
		),
		extractor,
		services.NewIndexBuilder(embeddingService),
		services.NewRetriever(embeddingService, settings.Analysis.TopK),
		services.NewJudge(llmService, extractor),
		func() driven.VectorIndex { return indexmem.New() },
		cachemem.New(settings.Analysis.CacheSize),
		settings.Analysis,
	)

	promptStore, err := configfile.NewPromptStore("", services.DefaultPrompts())
	if err != nil {
		logger.Warn("Prompt store unavailable, using embedded prompts: %v", err)
	} else {
		analysisService.SetPromptStore(promptStore)
		if err := promptStore.Watch(context.Background()); err != nil {
			logger.Debug("Prompt hot-reload disabled: %v", err)
		}
	}

	return analysisService, cleanup, nil
}

// loadSettings merges defaults, the config file, and environment
// variables. Environment wins for API keys so secrets stay out of the
// config file.
func loadSettings(store driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()

	settings.Embedding = domain.EmbeddingSettings{
		Provider: domain.AIProvider(store.GetString("embedding.provider")),
		Model:    store.GetString("embedding.model"),
		BaseURL:  store.GetString("embedding.base_url"),
		APIKey:   store.GetString("embedding.api_key"),
	}
	settings.LLM = domain.LLMSettings{
		Provider: domain.AIProvider(store.GetString("llm.provider")),
		Model:    store.GetString("llm.model"),
		BaseURL:  store.GetString("llm.base_url"),
		APIKey:   store.GetString("llm.api_key"),
	}

	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	applyKeyFromEnv(&settings.Embedding.APIKey, settings.Embedding.Provider)
	applyKeyFromEnv(&settings.LLM.APIKey, settings.LLM.Provider)

	if v := store.GetInt("analysis.chunk_size"); v > 0 {
		settings.Analysis.ChunkSize = v
	}
	if v := store.GetInt("analysis.chunk_overlap"); v > 0 {
		settings.Analysis.ChunkOverlap = v
	}
	if v := store.GetInt("analysis.top_k"); v > 0 {
		settings.Analysis.TopK = v
	}
	if v := store.GetInt("analysis.workers"); v > 0 {
		settings.Analysis.Workers = v
	}
	if v := store.GetInt("analysis.cache_size"); v > 0 {
		settings.Analysis.CacheSize = v
	}
	if _, ok := store.Get("analysis.batch"); ok {
		settings.Analysis.Batch = store.GetBool("analysis.batch")
	}

	return settings
}

// applyKeyFromEnv fills in the provider's API key from the conventional
// environment variable when the config file has none.
func applyKeyFromEnv(key *string, provider domain.AIProvider) {
	if *key != "" {
		return
	}
	switch provider {
	case domain.AIProviderOpenAI:
		*key = os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		*key = os.Getenv("ANTHROPIC_API_KEY")
	}
}
