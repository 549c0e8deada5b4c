// Package saves provides the interface for saved game persistence
package saves

//go:generate mockgen -destination=mock/mock_repository.go -package=savesmock github.com/KirkDiggler/spix/internal/repositories/saves Repository

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
)

// Repository defines the interface for saved game persistence.
// Saves are grouped by owner; a save with the same owner and name is
// overwritten.
type Repository interface {
	// Put writes a save, replacing any save of the same name
	// Returns errors.InvalidArgument for a missing owner, name or snapshot
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Get reads one save
	// Returns errors.InvalidArgument for a missing owner or name
	// Returns errors.NotFound if the save doesn't exist
	// Returns errors.InvalidSave if the stored data cannot be decoded
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns an owner's saves ordered by name
	// Returns errors.InvalidArgument for a missing owner
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// Summary describes a save without its contents
type Summary struct {
	Name    string
	SavedAt time.Time
}

// PutInput defines the input for writing a save
type PutInput struct {
	Owner    string
	Name     string
	Snapshot *scene.Snapshot
}

// PutOutput defines the output for writing a save
type PutOutput struct {
	Summary Summary
}

// GetInput defines the input for reading a save
type GetInput struct {
	Owner string
	Name  string
}

// GetOutput defines the output for reading a save
type GetOutput struct {
	Summary  Summary
	Snapshot *scene.Snapshot
}

// ListInput defines the input for listing saves
type ListInput struct {
	Owner string
}

// ListOutput defines the output for listing saves
type ListOutput struct {
	Saves []Summary
}

// NormalizeName lowercases and trims a save name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// validateKey checks owner and name and returns the normalized name.
// Both end up in file paths and redis keys.
func validateKey(owner, name string) (string, error) {
	name = NormalizeName(name)

	vb := errors.NewValidationBuilder()
	validateSegment("owner", owner, vb)
	validateSegment("name", name, vb)
	if err := vb.Build(); err != nil {
		return "", err
	}
	return name, nil
}

func validateSegment(field, value string, vb *errors.ValidationBuilder) {
	switch {
	case strings.TrimSpace(value) == "":
		vb.RequiredField(field)
	case strings.ContainsAny(value, `/\:`) || strings.Contains(value, ".."):
		vb.InvalidField(field, "must not contain path or key separators")
	}
}
