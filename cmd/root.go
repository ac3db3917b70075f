package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logient",
	Short: "Personal URL shortening service",
	Long: `Logient is a small web application where registered users create
short codes redirecting to a target URL, with per-user and global quotas
and a daily cleanup of expired links.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
