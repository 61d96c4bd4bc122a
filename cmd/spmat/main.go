// Command spmat assembles sparse systems described in YAML and reports on them.
//
// Usage:
//
//	spmat run problem.yaml --backend csc --format json
//	spmat compare problem.yaml --rtol 1e-10
package main

import (
	"os"

	"github.com/katalvlaran/lvsparse/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	err := cmd.Execute()
	os.Exit(cli.GetExitCode(err))
}
