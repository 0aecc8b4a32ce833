package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eddndev/achronyme-core/pkg/soc"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single SOC expression",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := soc.New(soc.WithOutput(os.Stdout))
		value, err := engine.Evaluate(args[0])
		if err != nil {
			exitWithError("%v", err)
		}
		fmt.Println(value.String())
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
