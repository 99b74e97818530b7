package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WarningComment is prepended to every generated file.
const WarningComment = "/********************************\n" +
	"\t Hey devs! This file was lovingly crafted by the design team and automatically synced through GitHub.\n" +
	"\t Be careful about making any changes, as they may be overwritten next time this is synced!\n" +
	"\t If you need to extend this file, it's reccommended that you create an additional CSS file and reference these values there.\n" +
	"********************************/\n\n"

const (
	colorsHeader    = "/* Colors */\n"
	gradientsHeader = "/* Gradients */\n"
)

// Format renders the token set as variable definitions for the dialect.
//
// The css dialect wraps the declarations in a :root{} block with each line
// indented by a tab; the other dialects emit top-level variables.
func Format(tokens TokenSet, dialect Dialect) (string, error) {
	syn, ok := syntaxes[dialect]
	if !ok {
		return "", &UnsupportedDialectError{Dialect: string(dialect)}
	}

	var b strings.Builder
	b.WriteString(colorsHeader)
	for _, c := range tokens.Colors {
		b.WriteString(syn.declaration(c.Name, c.Value))
	}
	b.WriteString("\n")
	b.WriteString(gradientsHeader)
	for _, g := range tokens.Gradients {
		value, err := GradientValue(g)
		if err != nil {
			return "", err
		}
		b.WriteString(syn.declaration(g.Name, value))
	}

	body := b.String()
	if dialect == CSS {
		body = ":root{\n\t" + strings.ReplaceAll(body, "\n", "\n\t") + "\n}"
	}

	return WarningComment + body + "\n", nil
}

// GradientValue renders a gradient as a CSS gradient function
func GradientValue(g Gradient) (string, error) {
	stops := make([]string, len(g.Stops))

	switch g.Type {
	case GradientLinear:
		for i, s := range g.Stops {
			stops[i] = s.Color + " " + formatNumber(s.Position*100) + "%"
		}
		return fmt.Sprintf("linear-gradient(%sdeg, %s)", formatNumber(Angle(g.From, g.To)), strings.Join(stops, ", ")), nil
	case GradientRadial:
		for i, s := range g.Stops {
			stops[i] = s.Color
		}
		return fmt.Sprintf("radial-gradient(%s)", strings.Join(stops, ", ")), nil
	default:
		return "", fmt.Errorf("gradient %q: unsupported gradient type %q", g.Name, g.Type)
	}
}

// Angle returns atan((from.y+to.y)/(from.x+to.x)) in degrees.
//
// The coordinates are summed, not differenced. Generated files in existing
// repositories depend on this exact value, so it is kept as is.
func Angle(from, to Point) float64 {
	opposite := from.Y + to.Y
	adjacent := from.X + to.X
	return math.Atan(opposite/adjacent) * 180 / math.Pi
}

// formatNumber prints the shortest decimal form, e.g. 0, 100, 33.5, NaN
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
