package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDatasetNotFound signals an unknown dataset id.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrWorkspaceNotFound signals a missing workspace.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a request the caller must fix.
	ErrInvalidInput = errors.New("invalid input")
)
