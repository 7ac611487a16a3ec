// Package workspace models user-defined groups of dataset ids.
package workspace

import "fmt"

// MaxNameLen caps workspace names.
const MaxNameLen = 128

// Workspace is a named, ordered group of dataset ids. It only references
// datasets and never mutates them; a workspace may keep referencing a
// dataset id that no longer exists (stale references are tolerated by
// search, which skips unknown ids).
type Workspace struct {
	id          string
	name        string
	description string
	datasetIDs  []string
}

// New validates and creates a Workspace.
func New(id, name, description string, datasetIDs []string) (Workspace, error) {
	if id == "" {
		return Workspace{}, fmt.Errorf("workspace id is required")
	}
	if name == "" {
		return Workspace{}, fmt.Errorf("workspace name is required")
	}
	if len(name) > MaxNameLen {
		return Workspace{}, fmt.Errorf("workspace name too long (max %d)", MaxNameLen)
	}
	return Workspace{
		id:          id,
		name:        name,
		description: description,
		datasetIDs:  dedup(datasetIDs),
	}, nil
}

// Reconstruct creates a Workspace without validation (storage hydration).
func Reconstruct(id, name, description string, datasetIDs []string) Workspace {
	return Workspace{id: id, name: name, description: description, datasetIDs: datasetIDs}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string { return w.id }

// Name returns the display name.
func (w *Workspace) Name() string { return w.name }

// Description returns the free-form description.
func (w *Workspace) Description() string { return w.description }

// DatasetIDs returns the ordered dataset id set.
func (w *Workspace) DatasetIDs() []string { return w.datasetIDs }

// dedup drops repeated ids while preserving first-seen order.
func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
