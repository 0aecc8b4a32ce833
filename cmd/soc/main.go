// Command soc is the SOC interpreter CLI: run scripts, evaluate
// one-liners, or start an interactive session.
package main

import (
	"os"

	"github.com/eddndev/achronyme-core/cmd/soc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
