package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	md2wechat "github.com/alnah/go-md2wechat"
)

// Style flags shared by convert and pdf.
var (
	flagTheme         string
	flagPrimaryColor  string
	flagFontSize      string
	flagCodeTheme     string
	flagWechat        bool
	flagInline        bool
	flagIncludeStyles bool
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "convert renders a Markdown file (or stdin) to WeChat HTML.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		markdown, err := readInput(args)
		if err != nil {
			return err
		}
		style, err := styleFromFlags()
		if err != nil {
			return err
		}

		svc, err := md2wechat.New(cliServiceOptions()...)
		if err != nil {
			return fmt.Errorf("creating service: %w", err)
		}
		defer svc.Close()

		out, err := svc.Convert(cmd.Context(), md2wechat.Input{
			Markdown:      markdown,
			Style:         style,
			IncludeStyles: flagIncludeStyles,
		})
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}

		if convertOutput == "" {
			fmt.Println(out.HTML)
			return nil
		}
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(convertOutput, []byte(out.HTML), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", convertOutput, err)
		}
		fmt.Printf("wrote %s\n", convertOutput)
		return nil
	},
}

// readInput returns the Markdown source from the file argument or stdin.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// cliServiceOptions honors the themes-dir environment override for the
// one-shot commands. serve resolves the same variable through the full
// config chain instead.
func cliServiceOptions() []md2wechat.Option {
	var opts []md2wechat.Option
	if dir := os.Getenv("MD2WECHAT_THEMES_DIR"); dir != "" {
		opts = append(opts, md2wechat.WithThemesDir(dir))
	}
	return opts
}

// styleFromFlags builds StyleOptions from the shared style flags.
// An unknown theme name is rejected up front instead of degrading.
func styleFromFlags() (md2wechat.StyleOptions, error) {
	if flagTheme != "" && !md2wechat.IsKnownTheme(flagTheme) {
		return md2wechat.StyleOptions{}, fmt.Errorf("%w: %q", md2wechat.ErrUnknownTheme, flagTheme)
	}
	return md2wechat.StyleOptions{
		Theme:            flagTheme,
		PrimaryColor:     flagPrimaryColor,
		FontSize:         flagFontSize,
		CodeTheme:        flagCodeTheme,
		WechatCompatible: flagWechat,
		InlineStyles:     flagInline,
	}, nil
}

// deriveOutputPath swaps the input file's extension, or falls back to
// "output"+ext when reading stdin.
func deriveOutputPath(args []string, ext string) string {
	if len(args) == 1 {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ext
	}
	return "output" + ext
}

// addStyleFlags registers the style flags shared by convert and pdf.
func addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagTheme, "theme", "", "theme name (default, grace, simple)")
	cmd.Flags().StringVar(&flagPrimaryColor, "primary-color", "", "primary color, e.g. #1a73e8")
	cmd.Flags().StringVar(&flagFontSize, "font-size", "", "base font size, e.g. 15px")
	cmd.Flags().StringVar(&flagCodeTheme, "code-theme", "", "code highlight palette, e.g. github")
	cmd.Flags().BoolVar(&flagWechat, "wechat", true, "resolve CSS variables for the WeChat editor")
	cmd.Flags().BoolVar(&flagInline, "inline", true, "inline styles for paste-ready HTML")
}

func init() {
	addStyleFlags(convertCmd)
	convertCmd.Flags().BoolVar(&flagIncludeStyles, "include-styles", true, "wrap the fragment in a styled document")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(convertCmd)
}
