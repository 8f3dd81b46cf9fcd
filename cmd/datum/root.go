package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datum",
	Short: "Datum is a reactive attribute-style data container",
	Long:  `Datum demonstrates reactive containers: computed and lazy fields, watchers, freezing, transactions, path access, diff/patch, and stable hashing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable diagnostic logging to stderr")
}
