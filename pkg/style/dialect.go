package style

import (
	"fmt"
	"strings"
)

// Dialect is a stylesheet language
type Dialect string

const (
	CSS    Dialect = "css"
	SCSS   Dialect = "scss"
	LESS   Dialect = "less"
	Stylus Dialect = "styl"
)

// syntax holds the pieces a variable declaration is built from
type syntax struct {
	prefix     string
	separator  string
	terminator string
}

var syntaxes = map[Dialect]syntax{
	CSS:    {prefix: "--", separator: ": ", terminator: ";\n"},
	SCSS:   {prefix: "$", separator: ": ", terminator: ";\n"},
	LESS:   {prefix: "@", separator: ": ", terminator: ";\n"},
	Stylus: {prefix: "", separator: " = ", terminator: "\n"},
}

// Dialects returns the supported dialects in a stable order
func Dialects() []Dialect {
	return []Dialect{CSS, SCSS, LESS, Stylus}
}

// DialectList renders the supported dialects as "css, scss, less, styl"
func DialectList() string {
	names := make([]string, 0, len(syntaxes))
	for _, d := range Dialects() {
		names = append(names, d.Extension())
	}
	return strings.Join(names, ", ")
}

// UnsupportedDialectError is returned for a dialect or file extension that is
// not one of css, scss, less or styl.
type UnsupportedDialectError struct {
	Dialect string
}

// Error implements the error interface
func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unrecognized file format '%s': expected one of %s", e.Dialect, DialectList())
}

// ParseDialect validates a dialect name. Matching is case-insensitive.
func ParseDialect(name string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := syntaxes[d]; !ok {
		return "", &UnsupportedDialectError{Dialect: name}
	}
	return d, nil
}

// DialectFromPath derives the dialect from the extension of a destination
// path, e.g. "styles/vars.scss" -> SCSS.
func DialectFromPath(path string) (Dialect, error) {
	ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
	if _, ok := syntaxes[Dialect(ext)]; !ok {
		return "", &UnsupportedDialectError{Dialect: ext}
	}
	return Dialect(ext), nil
}

// Extension returns the file extension for the dialect, without the dot
func (d Dialect) Extension() string {
	return string(d)
}

// declaration renders one variable line
func (s syntax) declaration(name, value string) string {
	return s.prefix + NormalizeName(name) + s.separator + value + s.terminator
}
