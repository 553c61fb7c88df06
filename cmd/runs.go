package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remoroo/shipit/internal/repository"
)

func newRunsCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded release runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			journal := repository.NewJSONRunJournal(c.fsRepo, c.cfg.JournalDir)
			runs, err := journal.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No release runs recorded.")
				return nil
			}
			for _, run := range runs {
				line := fmt.Sprintf("%s  %s  %s", run.StartedAt.Format("2006-01-02 15:04:05"), run.RunID, run.Status)
				if run.TagName != "" {
					line += "  " + run.TagName
				}
				if run.FailureKind != "" {
					line += "  (" + run.FailureKind + ")"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
