package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var exprFlag string

var evalCmd = &cobra.Command{
	Use:   "eval [file...]",
	Short: "Fold constant expressions from files or a command line flag",
	Long: `eval reads expression files (one expression per line, ! comments)
and prints the folded form of each expression. Files are processed
concurrently; output order follows the argument order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exprFlag != "" {
			return render(cmd.OutOrStdout(), formatFlag, []FileResult{
				{Results: []Result{foldInput(exprFlag)}},
			})
		}
		if len(args) == 0 {
			return errors.New("no input: pass expression files or -e EXPR")
		}
		files := make([]FileResult, len(args))
		g, _ := errgroup.WithContext(cmd.Context())
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				result, err := foldFile(path)
				if err != nil {
					return err
				}
				logger.Debug("folded file",
					zap.String("path", path),
					zap.Int("expressions", len(result.Results)))
				files[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), formatFlag, files)
	},
}

func init() {
	evalCmd.Flags().StringVarP(&exprFlag, "expr", "e", "", "fold a single expression instead of reading files")
}
