package main

import "fmt"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Retriever.RelevantCode(deps.Ctx, c.Query))
	return nil
}
