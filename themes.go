package md2wechat

import (
	"github.com/samber/lo"
)

// Theme name constants.
const (
	ThemeDefault = "default"
	ThemeGrace   = "grace"
	ThemeSimple  = "simple"
)

// Theme describes a selectable visual theme.
type Theme struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// themeRegistry is the fixed theme set, in display order.
var themeRegistry = []Theme{
	{Name: ThemeDefault, Label: "经典"},
	{Name: ThemeGrace, Label: "优雅"},
	{Name: ThemeSimple, Label: "简洁"},
}

// Themes returns the fixed theme list, always in the same order.
func Themes() []Theme {
	out := make([]Theme, len(themeRegistry))
	copy(out, themeRegistry)
	return out
}

// IsKnownTheme reports whether name is one of the fixed themes.
func IsKnownTheme(name string) bool {
	return lo.ContainsBy(themeRegistry, func(t Theme) bool { return t.Name == name })
}

// LookupTheme returns the theme with the given name.
func LookupTheme(name string) (Theme, bool) {
	return lo.Find(themeRegistry, func(t Theme) bool { return t.Name == name })
}
