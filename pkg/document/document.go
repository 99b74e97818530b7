// Package document reads design tokens from an exported design document.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"orbital/pkg/style"
)

// Provider yields the current tokens of a design document
type Provider interface {
	Tokens(ctx context.Context) (style.TokenSet, error)
}

// Document is the exported shape of a design document
type Document struct {
	Swatches  []Swatch        `json:"swatches" yaml:"swatches"`
	Gradients []NamedGradient `json:"gradients" yaml:"gradients"`
}

// Swatch is a named colour
type Swatch struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// NamedGradient is a gradient with its display name
type NamedGradient struct {
	Name     string   `json:"name" yaml:"name"`
	Gradient Gradient `json:"gradient" yaml:"gradient"`
}

// Gradient is the gradient definition as exported by the design tool
type Gradient struct {
	GradientType string      `json:"gradientType" yaml:"gradientType"`
	Stops        []Stop      `json:"stops" yaml:"stops"`
	From         style.Point `json:"from" yaml:"from"`
	To           style.Point `json:"to" yaml:"to"`
}

// Stop is one colour stop of a gradient
type Stop struct {
	Color    string  `json:"color" yaml:"color"`
	Position float64 `json:"position" yaml:"position"`
}

// gradientTypes maps the accepted spellings, lower-cased, to gradient types
var gradientTypes = map[string]style.GradientType{
	"linear":                    style.GradientLinear,
	"radial":                    style.GradientRadial,
	"style.gradienttype.linear": style.GradientLinear,
	"style.gradienttype.radial": style.GradientRadial,
}

// TokenSet converts the document into formatter input
func (d *Document) TokenSet() (style.TokenSet, error) {
	tokens := style.TokenSet{
		Colors:    make([]style.Color, 0, len(d.Swatches)),
		Gradients: make([]style.Gradient, 0, len(d.Gradients)),
	}

	for _, s := range d.Swatches {
		tokens.Colors = append(tokens.Colors, style.Color{Name: s.Name, Value: s.Color})
	}

	for _, g := range d.Gradients {
		gt, ok := gradientTypes[strings.ToLower(strings.TrimSpace(g.Gradient.GradientType))]
		if !ok {
			return style.TokenSet{}, fmt.Errorf("gradient %q has unsupported type %q", g.Name, g.Gradient.GradientType)
		}

		stops := make([]style.Stop, len(g.Gradient.Stops))
		for i, s := range g.Gradient.Stops {
			stops[i] = style.Stop{Color: s.Color, Position: s.Position}
		}

		tokens.Gradients = append(tokens.Gradients, style.Gradient{
			Name:  g.Name,
			Type:  gt,
			Stops: stops,
			From:  g.Gradient.From,
			To:    g.Gradient.To,
		})
	}

	return tokens, nil
}

// Parse decodes a document. format is "json" or "yaml".
func Parse(data []byte, format string) (*Document, error) {
	var doc Document

	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q: expected json, yaml or yml", format)
	}

	return &doc, nil
}

// FileProvider reads tokens from a .json, .yaml or .yml file. The file is
// read again on every call.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a provider for the document at path
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Tokens implements Provider
func (p *FileProvider) Tokens(_ context.Context) (style.TokenSet, error) {
	if p.Path == "" {
		return style.TokenSet{}, fmt.Errorf("no design document configured: pass --document or set document.path")
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return style.TokenSet{}, fmt.Errorf("failed to read design document: %w", err)
	}

	doc, err := Parse(data, strings.TrimPrefix(filepath.Ext(p.Path), "."))
	if err != nil {
		return style.TokenSet{}, fmt.Errorf("%s: %w", p.Path, err)
	}

	return doc.TokenSet()
}

// StaticProvider returns a fixed token set
type StaticProvider struct {
	Set style.TokenSet
}

// Tokens implements Provider
func (p StaticProvider) Tokens(_ context.Context) (style.TokenSet, error) {
	return p.Set, nil
}
