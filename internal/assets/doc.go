// Package assets provides theme CSS and HTML templates for page assembly.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    ├── AssetResolver     - combines both with custom-first fallback
//	    └── Cache             - memoizes successful loads
//
// EmbeddedLoader provides the built-in themes (default, grace, simple) and
// page templates embedded at compile time.
//
// FilesystemLoader lets deployments override theme CSS from a directory,
// with path traversal protection and symlink resolution. Custom directories
// carry themes only; templates always come from the embedded set.
//
// AssetResolver is the loader the service uses. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader when the asset is
// not found. This enables overriding individual themes while keeping the
// built-in ones.
//
// Cache wraps a loader and memoizes successful loads. Failures are never
// cached, so a theme file created after startup becomes loadable without a
// restart.
//
// # Directory Structure
//
// A custom theme directory is flat:
//
//	{basePath}/
//	└── {name}.css           # theme CSS (e.g. grace.css)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
