package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shipit",
	Short: "A CLI tool for releasing remoroo packages",
	Long: `shipit runs the interactive release workflow: it validates the
repository state, commits pending changes on request, reads the version
from the project manifest, creates the annotated release tag and pushes
branch and tag to the remote.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
