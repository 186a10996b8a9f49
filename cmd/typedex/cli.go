package main

import (
	"context"
	"io"

	"github.com/typedex/typedex"
	"github.com/typedex/typedex/crawl"
	"github.com/typedex/typedex/pipeline"
	"github.com/typedex/typedex/retrieve"
	"github.com/typedex/typedex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DB       *sqlite.DB
	Chunks   typedex.ChunkService
	Sitemaps typedex.SitemapService

	// Ingest path. Dispatcher and Discoverer are nil when ingesting from a
	// pre-fetched markdown file.
	Dispatcher *crawl.Dispatcher
	Discoverer *crawl.Discoverer
	Enricher   *pipeline.Enricher

	// Retrieval path.
	Retriever *retrieve.Retriever
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ingest  IngestCmd  `cmd:"" help:"Crawl a documentation site and index its chunks"`
	Search  SearchCmd  `cmd:"" help:"Search indexed chunks by similarity"`
	Types   TypesCmd   `cmd:"" help:"List indexed type names for a source"`
	Source  SourceCmd  `cmd:"" help:"Print the full source for a type"`
	Preview PreviewCmd `cmd:"" help:"Show URLs that would be crawled, without ingesting"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Source string `arg:"" help:"Corpus label stored with every chunk"`
	URL    string `arg:"" optional:"" help:"Documentation URL to crawl"`

	File        string   `short:"f" help:"Ingest a pre-fetched markdown corpus file instead of crawling"`
	Static      bool     `help:"Fetch over plain HTTP instead of a headless browser"`
	Adaptive    bool     `help:"Pause fetching while heap usage is high"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"5" help:"Concurrent fetch limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Source string `arg:"" help:"Corpus label to search"`
	Query  string `arg:"" help:"Natural-language query"`
}

// TypesCmd is the "types" subcommand.
type TypesCmd struct {
	Source string `arg:"" help:"Corpus label to list"`
}

// SourceCmd is the "source" subcommand.
type SourceCmd struct {
	Source string `arg:"" help:"Corpus label to read"`
	Type   string `arg:"" help:"Type name to reconstruct"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL    string   `arg:"" help:"Documentation URL to probe"`
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}
