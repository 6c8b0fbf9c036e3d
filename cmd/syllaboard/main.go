// Command syllaboard runs the syllabus extraction and board sync service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configfile "github.com/courseloft/syllaboard/internal/adapters/driven/config/file"
	openaillm "github.com/courseloft/syllaboard/internal/adapters/driven/llm/openai"
	mondayoauth "github.com/courseloft/syllaboard/internal/adapters/driven/oauth/monday"
	sessionsqlite "github.com/courseloft/syllaboard/internal/adapters/driven/session/sqlite"
	mondayapi "github.com/courseloft/syllaboard/internal/adapters/driven/workspace/monday"
	"github.com/courseloft/syllaboard/internal/adapters/driving/cli"
	"github.com/courseloft/syllaboard/internal/adapters/driving/httpapi"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/core/services"
	"github.com/courseloft/syllaboard/internal/logger"
	"github.com/courseloft/syllaboard/internal/normalisers"
	"github.com/courseloft/syllaboard/internal/normalisers/docx"
	"github.com/courseloft/syllaboard/internal/normalisers/pdf"
	"github.com/courseloft/syllaboard/internal/normalisers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "syllaboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer logger.Sync()

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	configPath := os.Getenv("SYLLABOARD_CONFIG")
	if configPath == "" {
		var err error
		configPath, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Verbose)

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(docx.New())
	registry.Register(pdf.New())
	documents := services.NewDocumentService(registry)

	newExtraction := func(apiKey string) (driving.ExtractionService, error) {
		llm, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  apiKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if err != nil {
			return nil, err
		}
		return services.NewExtractionEngine(llm, cfg.OpenAI.MaxTokens), nil
	}

	cli.SetExtractConfig(&cli.ExtractConfig{
		Document:      documents,
		NewExtraction: newExtraction,
		APIKey:        cfg.OpenAI.APIKey,
	})

	server, err := buildServer(cfg, documents, newExtraction)
	if err != nil {
		logger.Debug("http server unavailable: %v", err)
	} else {
		cli.SetServeConfig(&cli.ServeConfig{
			Server:     server,
			Listen:     cfg.Listen,
			ConfigPath: configPath,
		})
	}

	return cli.Execute(version)
}

// buildServer wires the full HTTP pipeline. It fails when required
// credentials are missing, in which case only the CLI commands that do
// not need them stay usable.
func buildServer(
	cfg *configfile.Config,
	documents driving.DocumentService,
	newExtraction func(string) (driving.ExtractionService, error),
) (*httpapi.Server, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}

	extraction, err := newExtraction(cfg.OpenAI.APIKey)
	if err != nil {
		return nil, err
	}

	exchanger, err := mondayoauth.NewExchanger(mondayoauth.Config{
		ClientID:     cfg.Monday.ClientID,
		ClientSecret: cfg.Monday.ClientSecret,
		RedirectURL:  cfg.Monday.RedirectURL,
	})
	if err != nil {
		return nil, err
	}

	store, err := sessionsqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	workspace := mondayapi.NewClient(mondayapi.Config{
		Endpoint:          cfg.Monday.APIURL,
		RequestsPerSecond: cfg.Sync.RequestsPerSecond,
		Burst:             cfg.Sync.Burst,
	})

	credentials := services.NewCredentialBroker(exchanger, store)
	boardSync := services.NewSyncEngine(workspace, cfg.Sync.ItemConcurrency)

	return httpapi.NewServer(documents, extraction, credentials, boardSync), nil
}
