package main

import (
	"fmt"

	"github.com/typedex/typedex"
)

// Run executes the types command.
func (c *TypesCmd) Run(deps *Dependencies) error {
	names, err := deps.Chunks.ListTypeNames(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typedex.ErrorMessage(err))
		return err
	}

	if len(names) == 0 {
		fmt.Fprintf(deps.Stdout, "No types indexed for source %q. Use 'typedex ingest' first.\n", c.Source)
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
