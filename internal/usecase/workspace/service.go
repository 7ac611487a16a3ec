// Package workspace manages named groups of dataset ids.
package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stadtlab/datenkarte/internal/domain"
	domws "github.com/stadtlab/datenkarte/internal/domain/workspace"
)

// Service handles workspace CRUD. Workspaces only reference dataset ids;
// they may keep ids of datasets that have since disappeared, and search
// tolerates that.
type Service struct {
	repo Repository
}

// New creates a workspace service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new workspace under a generated id.
func (s *Service) Create(ctx context.Context, name, description string, datasetIDs []string) (domws.Workspace, error) {
	ws, err := domws.New(uuid.NewString(), name, description, datasetIDs)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, ws); err != nil {
		return domws.Workspace{}, fmt.Errorf("create workspace: %w", err)
	}
	return ws, nil
}

// Get retrieves a workspace by id.
func (s *Service) Get(ctx context.Context, id string) (domws.Workspace, error) {
	ws, err := s.repo.Get(ctx, id)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// List returns all workspaces.
func (s *Service) List(ctx context.Context) ([]domws.Workspace, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return list, nil
}

// Delete removes a workspace. Datasets are never touched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// Resolve returns the dataset id list of a workspace for searching.
func (s *Service) Resolve(ctx context.Context, id string) ([]string, error) {
	ws, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	return ws.DatasetIDs(), nil
}
