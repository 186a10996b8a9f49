package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/typedex/typedex"
	"github.com/typedex/typedex/crawl"
	"github.com/typedex/typedex/gemini"
	"github.com/typedex/typedex/goquery"
	"github.com/typedex/typedex/htmltomarkdown"
	typedexhttp "github.com/typedex/typedex/http"
	"github.com/typedex/typedex/pipeline"
	"github.com/typedex/typedex/retrieve"
	"github.com/typedex/typedex/rod"
	"github.com/typedex/typedex/sqlite"
	"github.com/typedex/typedex/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// ChunkService for end-to-end testing.
	ChunkService typedex.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("typedex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'typedex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TYPEDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Chunks = m.ChunkService
	deps.Sitemaps = typedexhttp.NewSitemapService(nil)

	if cmd == "ingest" || cmd == "search" {
		client, err := geminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		switch cmd {
		case "ingest":
			deps.Enricher = &pipeline.Enricher{
				Embedder:     gemini.NewEmbedder(client),
				Summarizer:   gemini.NewSummarizer(client, ""),
				TokenCounter: gemini.NewTokenCounter(client, ""),
				Chunks:       m.ChunkService,
				Source:       cli.Ingest.Source,
			}

			// Crawling is skipped entirely when ingesting from a file.
			if cli.Ingest.File == "" {
				fetcher, err := newFetcher(cli.Ingest.Static)
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
					return fmt.Errorf("failed to start fetcher: %w", err)
				}
				defer fetcher.Close()

				limiter := crawl.NewPacedLimiter(1.0, crawl.DefaultMinDelay, crawl.DefaultMaxDelay)

				var gate *crawl.MemoryGate
				if cli.Ingest.Adaptive {
					gate = crawl.NewMemoryGate(0)
				}

				deps.Dispatcher = &crawl.Dispatcher{
					Fetcher:     fetcher,
					Extractor:   trafilatura.NewExtractor(),
					Converter:   htmltomarkdown.NewConverter(),
					Limiter:     limiter,
					Gate:        gate,
					Concurrency: cli.Ingest.Concurrency,
				}
				deps.Discoverer = &crawl.Discoverer{
					Fetcher:  fetcher,
					Selector: goquery.NewGenericSelector(),
					Limiter:  limiter,
				}
			}

		case "search":
			deps.Retriever = &retrieve.Retriever{
				Embedder: gemini.NewEmbedder(client),
				Chunks:   m.ChunkService,
				Source:   cli.Search.Source,
			}
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher picks the page fetcher: headless Chrome for JS-rendered sites,
// plain HTTP when --static is set.
func newFetcher(static bool) (typedex.Fetcher, error) {
	if static {
		return typedexhttp.NewFetcher(), nil
	}
	return rod.NewFetcher()
}

// geminiClient creates a Gemini API client from the environment.
func geminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("TYPEDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "typedex.db"
	}
	dir := filepath.Join(home, ".typedex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "typedex.db")
}
