// bench executes benchmark runs from a configuration directory and renders
// comparison reports. See `bench --help` for the command surface.
package main

import (
	"fmt"
	"os"

	"github.com/jeanremacle/benchmark-framework/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
