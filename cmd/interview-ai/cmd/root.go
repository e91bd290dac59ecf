package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"interview-ai/cmd/interview-ai/cmd/deploy"
	"interview-ai/cmd/interview-ai/cmd/serve"
	"interview-ai/cmd/interview-ai/cmd/version"
	deployer "interview-ai/internal/deploy"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "interview-ai",
	Short: "AI server for mock interview transcription and feedback",
	Long: `AI server for mock interview transcription and feedback.
- serve runs the HTTP API (STT and feedback)
- deploy installs a release tarball onto this host`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and exits with the
// code carried by a deploy failure, or 1 for any other error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return deployer.ExitOK
	}
	var exitErr *deployer.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return deployer.ExitFailure
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(deploy.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
