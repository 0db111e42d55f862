// Command themekit generates stylesheets and resources from style themes.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/themekit/internal/cli"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	cli.Version = version
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
