// Package style turns design tokens (colour swatches and gradients) into
// stylesheet variable definitions.
//
// Four dialects are supported: plain CSS custom properties, SCSS, LESS and
// Stylus. The dialect is normally derived from the extension of the file the
// output is written to:
//
//	dialect, err := style.DialectFromPath("styles/vars.scss")
//	text, err := style.Format(tokens, dialect)
//
// Format is a pure function: the same tokens and dialect always produce the
// same text.
package style
