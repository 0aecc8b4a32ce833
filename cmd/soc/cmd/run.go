package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eddndev/achronyme-core/pkg/soc"
)

var runCmd = &cobra.Command{
	Use:   "run <script.soc>",
	Short: "Run a SOC script file",
	Long: `Run parses and evaluates a script file. The value of the last
statement is printed unless --quiet is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")

		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("cannot read %s: %v", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			exitWithError("%v", err)
		}

		engine := soc.New(soc.WithOutput(os.Stdout))
		if err := preload(engine, cfg); err != nil {
			exitWithError("%v", err)
		}

		value, err := engine.Evaluate(string(source))
		if err != nil {
			exitWithError("%v", err)
		}
		if !quiet {
			fmt.Println(value.String())
		}
	},
}

// preload evaluates the configured preload scripts into the session.
func preload(engine *soc.Engine, cfg *soc.Config) error {
	for _, path := range cfg.Preload {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("preload %s: %w", path, err)
		}
		if _, err := engine.Evaluate(string(source)); err != nil {
			return fmt.Errorf("preload %s: %w", path, err)
		}
	}
	return nil
}

func init() {
	runCmd.Flags().BoolP("quiet", "q", false, "do not print the final value")
	rootCmd.AddCommand(runCmd)
}
