package count

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions is the allow-list of textual file extensions, lowercase
// and without the leading dot.
var DefaultExtensions = []string{
	"txt", "text", "md", "markdown", "log",
	"rs", "py", "js", "ts", "java", "c", "cpp", "h", "hpp",
	"go", "rb", "php", "swift", "kt", "scala", "r",
	"html", "htm", "css", "scss", "sass", "less",
	"xml", "svg", "json", "yaml", "yml", "toml", "ini",
	"csv", "tsv", "sql", "sh", "bash", "conf", "config",
}

// Filter decides which paths are counted.
//
// A path matches when its extension, compared case-insensitively, is one of
// Extensions exactly. Paths without an extension never match.
type Filter struct {
	Extensions map[string]bool // lowercase, no leading dot
}

// NewFilter returns a Filter over the given extensions.
func NewFilter(exts ...string) *Filter {
	f := &Filter{Extensions: make(map[string]bool, len(exts))}
	for _, ext := range exts {
		f.Extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return f
}

// DefaultFilter returns a Filter over DefaultExtensions.
func DefaultFilter() *Filter {
	return NewFilter(DefaultExtensions...)
}

// Matches reports whether path carries an allowed extension.
func (f *Filter) Matches(path string) bool {
	ext := extension(path)
	if ext == "" {
		return false
	}
	return f.Extensions[strings.ToLower(ext)]
}

// extension returns the extension of the last path element without the dot.
// Dotfiles such as ".bashrc" have no extension.
func extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}
