// Command carbonwise computes vehicle lifecycle emissions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rshade/carbonwise/internal/cli"
	"github.com/rshade/carbonwise/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !shouldPrint(err) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// shouldPrint reports whether err still needs to reach stderr. JSON mode
// errors are written to stdout by the command itself.
func shouldPrint(err error) bool {
	return !errors.Is(err, cli.ErrReported)
}
