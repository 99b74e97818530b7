package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/pkg/style"
)

const jsonDocument = `{
  "swatches": [
    {"name": "Brand Blue", "color": "#0000ff"},
    {"name": "Overlay", "color": "rgba(0,0,0,0.5)"}
  ],
  "gradients": [
    {
      "name": "Sunset",
      "gradient": {
        "gradientType": "Style.GradientType.Linear",
        "stops": [{"color": "#fff", "position": 0}, {"color": "#000", "position": 1}],
        "from": {"x": 0.5, "y": 0},
        "to": {"x": 0.5, "y": 1}
      }
    },
    {
      "name": "Glow",
      "gradient": {
        "gradientType": "radial",
        "stops": [{"color": "#fff", "position": 0}, {"color": "#000", "position": 1}]
      }
    }
  ]
}`

const yamlDocument = `swatches:
  - name: Brand Blue
    color: "#0000ff"
gradients:
  - name: Sunset
    gradient:
      gradientType: linear
      stops:
        - color: "#fff"
          position: 0
        - color: "#000"
          position: 1
      from: {x: 0.5, y: 0}
      to: {x: 0.5, y: 1}
`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileProvider_JSON(t *testing.T) {
	provider := NewFileProvider(writeDocument(t, "tokens.json", jsonDocument))

	tokens, err := provider.Tokens(context.Background())
	require.NoError(t, err)

	require.Len(t, tokens.Colors, 2)
	assert.Equal(t, style.Color{Name: "Brand Blue", Value: "#0000ff"}, tokens.Colors[0])
	assert.Equal(t, "rgba(0,0,0,0.5)", tokens.Colors[1].Value)

	require.Len(t, tokens.Gradients, 2)
	assert.Equal(t, style.GradientLinear, tokens.Gradients[0].Type)
	assert.Equal(t, style.Point{X: 0.5, Y: 1}, tokens.Gradients[0].To)
	assert.Equal(t, []style.Stop{{Color: "#fff", Position: 0}, {Color: "#000", Position: 1}}, tokens.Gradients[0].Stops)
	assert.Equal(t, style.GradientRadial, tokens.Gradients[1].Type)
}

func TestFileProvider_YAML(t *testing.T) {
	for _, name := range []string{"tokens.yaml", "tokens.yml"} {
		t.Run(name, func(t *testing.T) {
			provider := NewFileProvider(writeDocument(t, name, yamlDocument))

			tokens, err := provider.Tokens(context.Background())
			require.NoError(t, err)
			require.Len(t, tokens.Colors, 1)
			require.Len(t, tokens.Gradients, 1)
			assert.Equal(t, "Sunset", tokens.Gradients[0].Name)
			assert.Equal(t, style.GradientLinear, tokens.Gradients[0].Type)
			assert.Equal(t, style.Point{X: 0.5, Y: 0}, tokens.Gradients[0].From)
		})
	}
}

func TestFileProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   func(t *testing.T) string
		errMsg string
	}{
		{
			name:   "no path",
			path:   func(t *testing.T) string { return "" },
			errMsg: "no design document configured",
		},
		{
			name:   "missing file",
			path:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			errMsg: "failed to read design document",
		},
		{
			name:   "unsupported extension",
			path:   func(t *testing.T) string { return writeDocument(t, "tokens.txt", "{}") },
			errMsg: "unsupported document format",
		},
		{
			name:   "invalid JSON",
			path:   func(t *testing.T) string { return writeDocument(t, "tokens.json", "{") },
			errMsg: "failed to parse JSON document",
		},
		{
			name: "unknown gradient type",
			path: func(t *testing.T) string {
				return writeDocument(t, "tokens.json", `{"gradients":[{"name":"Cone","gradient":{"gradientType":"Style.GradientType.Angular"}}]}`)
			},
			errMsg: `gradient "Cone" has unsupported type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileProvider(tt.path(t)).Tokens(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDocument_GradientTypeSpellings(t *testing.T) {
	for _, spelling := range []string{"linear", "LINEAR", "Style.GradientType.Linear", " style.gradienttype.linear "} {
		doc := &Document{Gradients: []NamedGradient{{Name: "g", Gradient: Gradient{GradientType: spelling}}}}

		tokens, err := doc.TokenSet()
		require.NoError(t, err, spelling)
		assert.Equal(t, style.GradientLinear, tokens.Gradients[0].Type, spelling)
	}
}

func TestStaticProvider(t *testing.T) {
	set := style.TokenSet{Colors: []style.Color{{Name: "a", Value: "#fff"}}}

	tokens, err := StaticProvider{Set: set}.Tokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, set, tokens)
}
