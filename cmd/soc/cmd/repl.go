package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/eddndev/achronyme-core/pkg/soc"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive SOC session",
	Long: `The REPL keeps one session environment alive: bindings from earlier
inputs stay visible in later ones. End the session with Ctrl-D or :quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			exitWithError("%v", err)
		}
		runREPL(cfg)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// colorEnabled resolves the configured color mode against the terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

func runREPL(cfg *soc.Config) {
	engine := soc.New(soc.WithOutput(os.Stdout))
	if err := preload(engine, cfg); err != nil {
		exitWithError("%v", err)
	}

	color := colorEnabled(cfg.Color)
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "soc> "
	}

	fmt.Printf("SOC %s — interactive session (:quit to exit)\n", Version)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return
		}

		value, err := engine.Evaluate(line)
		if err != nil {
			if color {
				fmt.Printf("\033[1;31m%v\033[0m\n", err)
			} else {
				fmt.Printf("%v\n", err)
			}
			continue
		}
		fmt.Println(value.String())
	}
}
