package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "md2wechat",
	Short:         "md2wechat converts Markdown into WeChat-ready HTML.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("welcome to use md2wechat, use `md2wechat -h` for help")
	},
}

// Execute runs the root command. On error it prints the message with an
// actionable hint when one applies, then exits with a classified code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s%s\n", err, hintFor(err))
		os.Exit(exitCodeFor(err))
	}
}
