// Package pipeline enriches corpus chunks with summaries and embeddings and
// persists them to the chunk store. Failures are contained at the smallest
// unit: one chunk's provider failure substitutes a sentinel, one record's
// write failure is logged, and the batch always completes.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/typedex/typedex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent chunk enrichment. The reference
// behavior is unbounded fan-out; a cap avoids provider-side rate-limit
// storms without changing per-chunk semantics.
const DefaultConcurrency = 8

// Enricher runs the chunk enrichment pipeline.
type Enricher struct {
	Embedder   typedex.Embedder
	Summarizer typedex.Summarizer
	Chunks     typedex.ChunkService

	// Source is the corpus label stamped on every record and used to scope
	// all read paths.
	Source string

	// Concurrency caps concurrent chunk enrichment and store writes.
	// Non-positive selects DefaultConcurrency.
	Concurrency int

	// TokenCounter, if set, accumulates token statistics for ingest reports.
	TokenCounter typedex.TokenCounter

	// Logger receives per-chunk failure diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
}

// Result summarizes an ingest run.
type Result struct {
	Chunks     int // chunks enriched
	Degenerate int // chunks whose header failed to parse
	Stored     int // records persisted
	Failed     int // records whose insert failed
	Bytes      int // content bytes stored
	Tokens     int // approximate tokens stored (0 without a TokenCounter)
}

// Enrich produces one EnrichedChunk per input chunk, order preserved. For
// each chunk the summary and embedding calls run concurrently with each
// other; a failure in one never blocks the other. Summary failure
// substitutes typedex.SummaryUnavailable, embedding failure substitutes the
// zero vector, and either is logged. Enrich never fails a batch.
func (e *Enricher) Enrich(ctx context.Context, chunks []typedex.Chunk) []typedex.EnrichedChunk {
	enriched := make([]typedex.EnrichedChunk, len(chunks))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency())

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			enriched[i] = e.enrichChunk(ctx, chunk)
			return nil
		})
	}
	_ = g.Wait()

	return enriched
}

// enrichChunk requests the summary and embedding for one chunk concurrently
// and stamps metadata.
func (e *Enricher) enrichChunk(ctx context.Context, chunk typedex.Chunk) typedex.EnrichedChunk {
	var (
		wg        sync.WaitGroup
		summary   string
		embedding []float32
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		s, err := e.Summarizer.Summarize(ctx, chunk.Content)
		if err != nil {
			e.logger().Warn("summary failed, substituting sentinel",
				"type", chunk.TypeName, "chunk", chunk.Index, "error", err)
			summary = typedex.SummaryUnavailable
			return
		}
		summary = s
	}()
	go func() {
		defer wg.Done()
		v, err := e.Embedder.Embed(ctx, chunk.Content)
		if err != nil || len(v) != typedex.EmbeddingDim {
			if err != nil {
				e.logger().Warn("embedding failed, substituting zero vector",
					"type", chunk.TypeName, "chunk", chunk.Index, "error", err)
			} else {
				e.logger().Warn("embedding has wrong dimensionality, substituting zero vector",
					"type", chunk.TypeName, "chunk", chunk.Index, "got", len(v))
			}
			embedding = typedex.ZeroEmbedding()
			return
		}
		embedding = v
	}()
	wg.Wait()

	return typedex.EnrichedChunk{
		Chunk:     chunk,
		Summary:   summary,
		Embedding: embedding,
		Metadata: typedex.Metadata{
			Source:    e.Source,
			ChunkSize: len(chunk.Content),
			CreatedAt: time.Now().UTC(),
			FilePath:  chunk.FilePath,
		},
	}
}

// Ingest enriches the chunks and persists each record independently.
// Sibling writes are issued concurrently with no cross-record transaction;
// one record's failure is logged and does not affect the others.
func (e *Enricher) Ingest(ctx context.Context, chunks []typedex.Chunk) *Result {
	enriched := e.Enrich(ctx, chunks)

	result := &Result{Chunks: len(enriched)}
	for _, c := range chunks {
		if c.Degenerate() {
			result.Degenerate++
		}
	}

	var stored, failed, bytes atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency())

	for _, ec := range enriched {
		ec := ec
		g.Go(func() error {
			page := &typedex.CodePage{
				EnrichedChunk: ec,
				Source:        e.Source,
			}
			if err := e.Chunks.CreateChunk(ctx, page); err != nil {
				e.logger().Error("chunk insert failed",
					"type", ec.TypeName, "chunk", ec.Index, "error", err)
				failed.Add(1)
				return nil
			}
			stored.Add(1)
			bytes.Add(int64(len(ec.Content)))
			return nil
		})
	}
	_ = g.Wait()

	result.Stored = int(stored.Load())
	result.Failed = int(failed.Load())
	result.Bytes = int(bytes.Load())

	if e.TokenCounter != nil {
		for _, ec := range enriched {
			if tokens, err := e.TokenCounter.CountTokens(ctx, ec.Content); err == nil {
				result.Tokens += tokens
			}
		}
	}

	return result
}

func (e *Enricher) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return DefaultConcurrency
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
