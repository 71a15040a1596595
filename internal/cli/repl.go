package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const historyFile = ".lumina_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively fold expressions",
	RunE: func(cmd *cobra.Command, args []string) error {
		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		historyPath := replHistoryPath()
		if historyPath != "" {
			if f, err := os.Open(historyPath); err == nil {
				_, _ = line.ReadHistory(f)
				f.Close()
			}
		}
		defer saveHistory(line, historyPath)

		fmt.Fprintln(cmd.OutOrStdout(), "lumina repl; :quit to exit")
		for {
			input, err := line.Prompt("fold> ")
			if err != nil {
				// Ctrl-C or Ctrl-D ends the session.
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			if input == ":quit" || input == ":q" {
				return nil
			}
			line.AppendHistory(input)
			renderResult(cmd.OutOrStdout(), foldInput(input))
		}
	},
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
