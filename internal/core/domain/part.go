// Package domain contains the core types of the build pipeline.
package domain

// Model is the opaque geometry handle attached to a part. The pipeline
// never inspects the geometry itself; it only asks for the serialized
// description text.
type Model interface {
	// ToSCAD returns the textual description of the geometry.
	ToSCAD() string
}

// Part is a named, independently buildable geometry definition.
type Part struct {
	Name  string
	Model Model
}

// Resolution holds the three tessellation parameters applied uniformly
// to every emitted description.
type Resolution struct {
	// Fa is the minimum angle per fragment, in degrees.
	Fa float64
	// Fs is the minimum fragment size.
	Fs float64
	// Fn is the fixed fragment count; zero means "use Fa/Fs".
	Fn float64
}

// DefaultResolution matches the defaults applied to new projects.
func DefaultResolution() Resolution {
	return Resolution{Fa: 3.0, Fs: 0.5, Fn: 0}
}
