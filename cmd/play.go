package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Generate a quiz and take it in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addQuizFlags(playCmd.Flags())
}

func runPlay(cmd *cobra.Command) error {
	r, err := newQuizRun(cmd, true)
	if err != nil {
		return err
	}
	defer r.Close()

	return app.Run(app.Options{
		Context:    cmd.Context(),
		Pipeline:   r.pipeline,
		Request:    r.request,
		ShowRaw:    r.cfg.Quiz.ShowRaw,
		ModelLabel: r.modelLabel,
		Logger:     r.log,
	})
}
