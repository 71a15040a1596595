package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	formatFlag  string
	verboseFlag bool
	logger      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina constant folding tools",
	Long: `lumina evaluates Lumina constant expressions: intrinsic calls,
relational comparisons, and logical operations are folded exactly the
way the compiler's semantic analysis folds them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verboseFlag {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// ExecuteContext runs the root command; the context cancels watch mode.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "text", "output format (text or yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(watchCmd)
}
