package main

import (
	"fmt"

	"github.com/aretw0/portico"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of portico",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portico version %s\n", portico.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
