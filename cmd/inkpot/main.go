// Command inkpot is the notebook question-answering CLI.
package main

import (
	"fmt"
	"os"

	"github.com/inkpot-labs/inkpot/internal/adapters/driven/config/file"
	"github.com/inkpot-labs/inkpot/internal/adapters/driven/llm/openai"
	"github.com/inkpot-labs/inkpot/internal/adapters/driven/ocr/tesseract"
	"github.com/inkpot-labs/inkpot/internal/adapters/driven/pdfraster"
	"github.com/inkpot-labs/inkpot/internal/adapters/driven/storage/sqlite"
	"github.com/inkpot-labs/inkpot/internal/adapters/driven/web"
	"github.com/inkpot-labs/inkpot/internal/adapters/driving/cli"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
	"github.com/inkpot-labs/inkpot/internal/core/services"
	"github.com/inkpot-labs/inkpot/internal/extractors"
	"github.com/inkpot-labs/inkpot/internal/logger"
	"github.com/inkpot-labs/inkpot/internal/postprocessors/chunker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	proc := chunker.New(
		chunker.WithMaxChars(cfg.GetInt("chunk.max_chars")),
		chunker.WithOverlap(cfg.GetInt("chunk.overlap")),
	)

	ocr := tesseract.NewOCRService()
	if !ocr.Available() {
		logger.Debug("main: OCR unavailable in this build, scanned pages will be skipped")
	}

	textExt := extractors.NewTextExtractor(proc)
	pdfExt := extractors.NewPDFExtractor(ocr, pdfraster.NewRasterizer(), proc)
	webExt := extractors.NewWebExtractor(web.NewFetcher(), web.NewRenderer(), proc)

	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	query := services.NewQueryService(store.NotebookStore(), store.ChunkStore(), llm)
	ingest := services.NewIngestService(
		store.NotebookStore(), store.SourceStore(), store.ChunkStore(),
		textExt, pdfExt, webExt, query,
	)
	notebooks := services.NewNotebookService(store.NotebookStore(), query)
	sources := services.NewSourceService(store.NotebookStore(), store.SourceStore(), query)

	cli.SetServices(cli.Services{
		Notebooks: notebooks,
		Sources:   sources,
		Ingest:    ingest,
		Query:     query,
	})
	return cli.Execute()
}

// buildLLM assembles the optional synthesis backend. Without an API
// key answers degrade to excerpts; that is a supported configuration,
// not an error.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	apiKey := cfg.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("INKPOT_API_KEY")
	}
	if apiKey == "" {
		logger.Debug("main: no LLM API key configured, answers degrade to excerpts")
		return nil, nil
	}

	svc, err := openai.NewLLMService(openai.Config{
		APIKey:  apiKey,
		BaseURL: cfg.GetString("llm.base_url"),
		Model:   cfg.GetString("llm.model"),
	})
	if err != nil {
		return nil, fmt.Errorf("configuring LLM: %w", err)
	}
	return svc, nil
}
