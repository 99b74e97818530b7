package style

// Point is a position on the design canvas, in normalised coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Color is a named colour swatch. Value is already serialised (#RRGGBB, rgba(...)).
type Color struct {
	Name  string
	Value string
}

// GradientType selects between linear and radial rendering
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Stop is a colour stop. Position is a fraction in [0,1].
type Stop struct {
	Color    string
	Position float64
}

// Gradient is a named gradient. From and To are only used by linear gradients.
type Gradient struct {
	Name  string
	Type  GradientType
	Stops []Stop
	From  Point
	To    Point
}

// TokenSet is everything exported from one design document
type TokenSet struct {
	Colors    []Color
	Gradients []Gradient
}
