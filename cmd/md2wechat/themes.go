package main

import (
	"fmt"

	"github.com/spf13/cobra"

	md2wechat "github.com/alnah/go-md2wechat"
)

var themesCmd = &cobra.Command{
	Use:   "themes [name]",
	Short: "themes lists the available themes, or shows one by name.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			theme, ok := md2wechat.LookupTheme(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", md2wechat.ErrUnknownTheme, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", theme.Name, theme.Label)
			return nil
		}
		for _, theme := range md2wechat.Themes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", theme.Name, theme.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
