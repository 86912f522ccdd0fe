package md2wechat

import (
	"time"
)

// Style defaults applied when a field is left empty.
const (
	DefaultPrimaryColor = "#1a73e8"
	DefaultFontSize     = "15px"
	DefaultLineHeight   = "1.75"
	DefaultCodeTheme    = "github"
)

// defaultFontFamily is the system font stack WeChat articles render well with.
const defaultFontFamily = `-apple-system-font, BlinkMacSystemFont, "Helvetica Neue", "PingFang SC", "Hiragino Sans GB", "Microsoft YaHei UI", "Microsoft YaHei", Arial, sans-serif`

// Legend policies for image captions.
const (
	LegendNone     = "none"
	LegendAlt      = "alt"
	LegendTitle    = "title"
	LegendAltTitle = "alt-title" // alt first, fall back to title
	LegendTitleAlt = "title-alt" // title first, fall back to alt
)

// StyleOptions controls the visual presentation of an assembled page.
// Zero values mean "use the default"; see WithDefaults.
type StyleOptions struct {
	Theme            string `json:"theme"`
	PrimaryColor     string `json:"primaryColor"`
	FontSize         string `json:"fontSize"`
	FontFamily       string `json:"fontFamily"`
	LineHeight       string `json:"lineHeight"`
	CodeTheme        string `json:"codeTheme"`
	WechatCompatible bool   `json:"wechatCompatible"`
	InlineStyles     bool   `json:"inlineStyles"`
}

// DefaultStyleOptions returns style options with all defaults filled in.
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		Theme:        ThemeDefault,
		PrimaryColor: DefaultPrimaryColor,
		FontSize:     DefaultFontSize,
		FontFamily:   defaultFontFamily,
		LineHeight:   DefaultLineHeight,
		CodeTheme:    DefaultCodeTheme,
	}
}

// WithDefaults returns a copy with empty fields replaced by defaults.
// Boolean flags are kept as-is. An unknown theme name is NOT rejected here:
// theme CSS lookup degrades to the base stylesheet with a logged warning.
func (o StyleOptions) WithDefaults() StyleOptions {
	d := DefaultStyleOptions()
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	if o.PrimaryColor == "" {
		o.PrimaryColor = d.PrimaryColor
	}
	if o.FontSize == "" {
		o.FontSize = d.FontSize
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.LineHeight == "" {
		o.LineHeight = d.LineHeight
	}
	if o.CodeTheme == "" {
		o.CodeTheme = d.CodeTheme
	}
	return o
}

// RenderOptions is the bag of renderer toggles carried on a request.
// countStatus is accepted for API compatibility but has no output effect
// (word count is an editor status-bar concern).
type RenderOptions struct {
	Legend           string `json:"legend"`
	CiteStatus       bool   `json:"citeStatus"`
	CountStatus      bool   `json:"countStatus"`
	IsMacCodeBlock   bool   `json:"isMacCodeBlock"`
	IsShowLineNumber bool   `json:"isShowLineNumber"`
	Sanitize         bool   `json:"sanitize"`
}

// Input contains conversion parameters for a single document.
type Input struct {
	Markdown      string        // Markdown content
	Options       RenderOptions // renderer toggles
	Style         StyleOptions  // presentation options (defaults applied internally)
	IncludeStyles bool          // false = return the rendered fragment as-is
}

// Output is the result of a conversion.
type Output struct {
	HTML string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout   time.Duration
	workers   int
	themesDir string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2wechat: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithWorkers sets the renderer pool capacity.
// Panics if n < 1; omit the option to derive the size from GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("md2wechat: WithWorkers count must be positive")
	}
	return func(s *Service) {
		s.cfg.workers = n
	}
}

// WithThemesDir points theme loading at a directory on disk.
// Files there take precedence over the embedded themes; the embedded set
// remains the fallback. Empty (the default) uses embedded themes only.
func WithThemesDir(dir string) Option {
	return func(s *Service) {
		s.cfg.themesDir = dir
	}
}
