// Package workspace persists workspaces as Valkey/Redis hashes.
package workspace

import (
	"context"
	"fmt"
	"sort"

	"github.com/stadtlab/datenkarte/internal/domain"
	domws "github.com/stadtlab/datenkarte/internal/domain/workspace"
)

// keyPrefix namespaces all workspace keys.
const keyPrefix = "datenkarte:workspace:"

// store is the consumer interface for workspace persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/workspace.Repository.
type Repo struct {
	store store
}

// New creates a workspace repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new workspace hash. Fails if the id already exists.
func (r *Repo) Create(ctx context.Context, ws domws.Workspace) error {
	key := wsKey(ws.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	fields, err := workspaceToHash(ws)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset workspace %s: %w", ws.ID(), err)
	}
	return nil
}

// Get retrieves a workspace by id.
func (r *Repo) Get(ctx context.Context, id string) (domws.Workspace, error) {
	m, err := r.store.HGetAll(ctx, wsKey(id))
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("hgetall workspace %s: %w", id, err)
	}
	if len(m) == 0 {
		return domws.Workspace{}, domain.ErrWorkspaceNotFound
	}
	return workspaceFromHash(m)
}

// List returns all workspaces sorted by creation time.
func (r *Repo) List(ctx context.Context) ([]domws.Workspace, error) {
	keys, err := r.store.Scan(ctx, wsKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan workspaces: %w", err)
	}
	if len(keys) == 0 {
		return []domws.Workspace{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi workspaces: %w", err)
	}

	type row struct {
		ws        domws.Workspace
		createdAt int64
	}
	rows := make([]row, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		ws, err := workspaceFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse workspace %s: %w", keys[i], err)
		}
		rows = append(rows, row{ws: ws, createdAt: createdAtFromHash(m)})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].createdAt != rows[j].createdAt {
			return rows[i].createdAt < rows[j].createdAt
		}
		return rows[i].ws.ID() < rows[j].ws.ID()
	})

	out := make([]domws.Workspace, len(rows))
	for i, r := range rows {
		out[i] = r.ws
	}
	return out, nil
}

// Delete removes a workspace.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := wsKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrWorkspaceNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del workspace %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored workspaces.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, wsKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan workspaces: %w", err)
	}
	return len(keys), nil
}

func wsKey(id string) string {
	return keyPrefix + id
}
