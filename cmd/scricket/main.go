// Command scricket scores cricket matches ball by ball.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/scricket/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scricket:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
