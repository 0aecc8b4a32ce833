// Package cmd implements the soc command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eddndev/achronyme-core/pkg/soc"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "soc",
	Short: "SOC calculator language interpreter",
	Long: `soc is the interpreter for SOC (Superior Order Calculator), a small
dynamically typed expression language for mathematical and scientific
computation: numbers, complex numbers, tensors, records, first-class
functions with closures, and tail-call optimized recursion via rec.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to soc.yaml (default: ./soc.yaml when present)")
}

// loadConfig resolves the effective configuration: an explicit --config
// path must exist, an implicit ./soc.yaml is optional.
func loadConfig() (*soc.Config, error) {
	if configPath != "" {
		return soc.LoadConfig(configPath)
	}
	if _, err := os.Stat("soc.yaml"); err == nil {
		return soc.LoadConfig("soc.yaml")
	}
	return soc.DefaultConfig(), nil
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
