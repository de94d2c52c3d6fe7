// Command chat is a terminal client for the locality analytics conversation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	backendURL string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Locality analytics chat - ask about prices, demand and trends",
	Long: `chat talks to the analytics backend the same way the conversation
service does: it matches localities, keeps session memory, enriches each
question and shows the shaped answer with suggestions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "analytics backend base URL (default from ANALYTICS_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show enriched queries and debug logs")

	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newClassifyCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
