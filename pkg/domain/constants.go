package domain

// Tracer defaults.
const (
	LearningRate  = 0.04
	MaxSteps      = 250
	GradientFloor = 1e-4
)

// GridResolution is the number of samples per axis of a surface plot.
const GridResolution = 80

// DifferenceStep is the half-width of the central difference used when no
// symbolic derivative is available.
const DifferenceStep = 1e-6

// SingularRadius is the radius below which radial fields are treated as singular.
const SingularRadius = 1e-8

// Variables of every field.
const (
	VarX = "x"
	VarY = "y"
)
