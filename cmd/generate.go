package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz and print it as JSON",
	Long: "Generate a quiz without the interactive UI. The canonical quiz JSON is\n" +
		"written to stdout, or to --out. When the model fails the local generator\n" +
		"is used and a notice is printed to stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newQuizRun(cmd, false)
		if err != nil {
			return err
		}
		defer r.Close()

		out, err := r.pipeline.Run(cmd.Context(), r.request)
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		stderr := cmd.ErrOrStderr()
		if out.Fallback {
			if out.Err != nil {
				fmt.Fprintf(stderr, "Failed to generate a valid quiz after %d attempt(s); used the local generator.\n", out.Attempts)
				if r.cfg.Quiz.ShowRaw && out.Raw != "" {
					fmt.Fprintln(stderr, "Raw model output:")
					fmt.Fprintln(stderr, out.Raw)
				}
			}
		} else {
			fmt.Fprintf(stderr, "Generated %d question(s) in %d attempt(s).\n", len(out.Quiz.Questions), out.Attempts)
		}

		data, err := json.MarshalIndent(out.Quiz, "", "  ")
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		data = append(data, '\n')

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write quiz: %w", err)
		}
		fmt.Fprintf(stderr, "Wrote %s\n", path)
		return nil
	},
}

func init() {
	addQuizFlags(generateCmd.Flags())
	generateCmd.Flags().StringP("out", "o", "", "Write the quiz JSON to this file")
}
