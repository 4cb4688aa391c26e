// Package ansi provides ANSI escape code constants and a switchable palette
// for terminal output. All coloured CLI output should go through a Palette so
// --no-color and non-terminal output stay plain.
package ansi

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// Palette holds the escape codes used for one output stream. The zero
// Palette renders everything uncoloured.
type Palette struct {
	Reset   string
	Bold    string
	Dim     string
	Blue    string
	Yellow  string
	Green   string
	Red     string
	Cyan    string
	Magenta string
}

// Colors returns the full palette when enabled is true and the empty palette
// otherwise.
func Colors(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	return Palette{
		Reset:   Reset,
		Bold:    Bold,
		Dim:     Dim,
		Blue:    Blue,
		Yellow:  Yellow,
		Green:   Green,
		Red:     Red,
		Cyan:    Cyan,
		Magenta: Magenta,
	}
}

// Paint wraps s in code and a reset. It returns s unchanged when code is
// empty.
func (p Palette) Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + p.Reset
}
