package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing results to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "fundledger-cli",
		Short:         "fundledger CLI tool",
		Long:          `A command line interface for the fundledger API and its ledger store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the fundledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	api := func() *apiClient { return newAPIClient(baseURL, timeout) }

	rootCmd.AddCommand(
		newFundsCmd(api),
		newInvestmentsCmd(api),
		newStatsCmd(api),
		newPortfolioCmd(api),
		newOverviewCmd(api),
		newMigrateCmd(),
		newBackupCmd(),
	)

	return rootCmd
}
