package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	md2wechat "github.com/alnah/go-md2wechat"
)

var (
	pdfOutput  string
	pdfTimeout time.Duration
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "pdf renders a Markdown file (or stdin) to a PDF snapshot.",
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

		opts := append(cliServiceOptions(), md2wechat.WithTimeout(pdfTimeout))
		svc, err := md2wechat.New(opts...)
		if err != nil {
			return fmt.Errorf("creating service: %w", err)
		}
		defer svc.Close()

		// Snapshots always use the full styled document
		out, err := svc.Convert(cmd.Context(), md2wechat.Input{
			Markdown:      markdown,
			Style:         style,
			IncludeStyles: true,
		})
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}

		// The page renders from a temp file, so images referenced relative
		// to the input file need absolute file:// URLs.
		page := out.HTML
		if len(args) == 1 {
			page, err = md2wechat.RewriteRelativePaths(page, filepath.Dir(args[0]))
			if err != nil {
				return fmt.Errorf("resolving local assets: %w", err)
			}
		}

		pdfBytes, err := svc.ExportPDF(cmd.Context(), page)
		if err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}

		output := pdfOutput
		if output == "" {
			output = deriveOutputPath(args, ".pdf")
		}
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Printf("wrote %s\n", output)
		return nil
	},
}

func init() {
	addStyleFlags(pdfCmd)
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "output file (default input name with .pdf)")
	pdfCmd.Flags().DurationVar(&pdfTimeout, "timeout", 30*time.Second, "PDF generation timeout")
	rootCmd.AddCommand(pdfCmd)
}
