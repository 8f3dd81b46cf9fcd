package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/datum"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of datum",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("datum version %s\n", datum.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
