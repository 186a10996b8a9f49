package main

import (
	"fmt"

	"github.com/typedex/typedex/retrieve"
)

// Run executes the source command.
func (c *SourceCmd) Run(deps *Dependencies) error {
	r := deps.Retriever
	if r == nil {
		// Source reconstruction needs no embedder, so it skips the Gemini
		// client setup the search command requires.
		r = &retrieve.Retriever{Chunks: deps.Chunks, Source: c.Source}
	}

	fmt.Fprintln(deps.Stdout, r.SourceForType(deps.Ctx, c.Type))
	return nil
}
