// deparse renders a parsed SQL SELECT AST, given as JSON or YAML, back into
// SQL text.
package main

import (
	"log/slog"
	"os"

	"github.com/zoobzio/deparse/cmd/deparse/command"
)

func main() {
	root, _ := command.GetRootCommand()
	if err := root.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
