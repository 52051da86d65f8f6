package domain

import "go.trai.ch/zerr"

var (
	// ErrPartNotFound is returned when a requested part is not registered in the project.
	ErrPartNotFound = zerr.New("part not found")

	// ErrPartAlreadyExists is returned when registering a part under a name that is already taken.
	ErrPartAlreadyExists = zerr.New("part already exists")

	// ErrNilModel is returned when a part is registered without a geometry model.
	ErrNilModel = zerr.New("part model is nil")
)
