package assets

// defaultLoader is the package-level embedded loader for callers that need
// built-in assets without constructing a resolver. Themes always go through
// a resolver so filesystem overrides apply; only templates, which ship
// embedded-only, are loaded here.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads an embedded HTML template by name.
// The name should not include the .html extension or path components.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
