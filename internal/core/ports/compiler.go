package ports

import "context"

// MeshCompiler invokes the external geometry compiler for one part.
type MeshCompiler interface {
	// Compile reads the description file at scadPath and writes the mesh
	// artifact to stlPath. A nonzero exit status is returned as an error.
	Compile(ctx context.Context, scadPath, stlPath string) error
}
