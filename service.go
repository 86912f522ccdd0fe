package md2wechat

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2wechat/internal/assets"
)

// Service orchestrates the markdown-to-WeChat-HTML pipeline.
type Service struct {
	cfg       serviceConfig
	pool      *RendererPool
	assembler pageAssembler
	pdf       pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithThemesDir).
// Returns an error if a configured themes directory is invalid.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	resolver, err := assets.NewAssetResolver(s.cfg.themesDir)
	if err != nil {
		return nil, fmt.Errorf("configuring theme assets: %w", err)
	}

	if s.pool == nil {
		s.pool = NewRendererPool(ResolvePoolSize(s.cfg.workers))
	}
	if s.assembler == nil {
		s.assembler = NewPageAssembler(assets.NewCache(resolver))
	}
	// Create PDF converter if not injected (e.g., by tests)
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// Convert runs the full pipeline and returns the final HTML.
// The context is used for cancellation; each conversion is additionally
// bounded by the configured timeout.
func (s *Service) Convert(ctx context.Context, input Input) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	r := s.pool.Acquire()
	defer s.pool.Release(r)

	r.Reset(input.Options)
	fragment, err := r.Render(ctx, input.Markdown)
	if err != nil {
		return Output{}, fmt.Errorf("rendering markdown: %w", err)
	}

	page, err := s.assembler.Assemble(fragment, input.Style, input.IncludeStyles)
	if err != nil {
		return Output{}, fmt.Errorf("assembling page: %w", err)
	}

	return Output{HTML: page}, nil
}

// ExportPDF renders an assembled HTML page to a PDF snapshot.
// The first call launches a headless browser; Close releases it.
func (s *Service) ExportPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	pdfBytes, err := s.pdf.ToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}

// Workers returns the renderer pool capacity.
func (s *Service) Workers() int {
	return s.pool.Size()
}
