package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version shows md2wechat version info.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("md2wechat %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
