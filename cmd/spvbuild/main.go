// Command spvbuild compiles a rust-gpu shader crate into a SPIR-V module.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/spvbuild/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "spvbuild: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
