package field

import (
	"github.com/aretw0/descent/pkg/calc"
	"github.com/aretw0/descent/pkg/domain"
)

// SingularityKind names a policy for sampling at the origin of a radial field.
type SingularityKind string

const (
	SingularityNone   SingularityKind = "none"
	SingularityLimit  SingularityKind = "limit"  // return a known limit value
	SingularityOffset SingularityKind = "offset" // sample a nearby point instead
)

// Singularity is the per-field policy applied when r = sqrt(x²+y²) < domain.SingularRadius.
type Singularity struct {
	Kind  SingularityKind `json:"kind"`
	Value float64         `json:"value,omitempty"`
	At    domain.Point    `json:"at,omitzero"`
}

// DetectSingularity inspects a tree for the radial term sqrt(x^2+y^2).
//
// Radial fields that also apply sin (sinc-shaped surfaces such as sin(r)/r) use
// their limit 1 at the origin. Every other radial field is sampled at
// (SingularRadius, 0). Fields without the radial term get SingularityNone.
func DetectSingularity(n calc.Node) Singularity {
	radial, sine := false, false
	calc.Walk(n, func(n calc.Node) bool {
		c, ok := n.(*calc.Call)
		if !ok {
			return true
		}
		switch {
		case c.Name == "sqrt" && len(c.Args) == 1 && isRadius(c.Args[0]):
			radial = true
		case c.Name == "sin":
			sine = true
		}
		return true
	})

	switch {
	case !radial:
		return Singularity{Kind: SingularityNone}
	case sine:
		return Singularity{Kind: SingularityLimit, Value: 1}
	default:
		return Singularity{Kind: SingularityOffset, At: domain.Point{X: domain.SingularRadius, Y: 0}}
	}
}

func isRadius(n calc.Node) bool {
	switch n.String() {
	case "x^2+y^2", "y^2+x^2":
		return true
	}
	return false
}
