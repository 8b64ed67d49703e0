package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizcraft",
	Short: "Turn study notes into multiple-choice quizzes",
	Long: "quizcraft builds multiple-choice quizzes from a PDF or text using a language model,\n" +
		"repairing imperfect model output and falling back to a local generator when the\n" +
		"model cannot produce a usable quiz.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the CLI. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addQuizFlags(rootCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
