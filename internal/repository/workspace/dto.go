package workspace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domws "github.com/stadtlab/datenkarte/internal/domain/workspace"
)

// workspaceToHash converts a domain Workspace to a map for HSET.
func workspaceToHash(ws domws.Workspace) (map[string]string, error) {
	idsJSON, err := json.Marshal(ws.DatasetIDs())
	if err != nil {
		return nil, fmt.Errorf("marshal dataset ids: %w", err)
	}
	return map[string]string{
		"id":               ws.ID(),
		"name":             ws.Name(),
		"description":      ws.Description(),
		"dataset_ids_json": string(idsJSON),
		"created_at":       strconv.FormatInt(time.Now().Unix(), 10),
	}, nil
}

// workspaceFromHash hydrates a domain Workspace from an HGETALL result map.
func workspaceFromHash(m map[string]string) (domws.Workspace, error) {
	var ids []string
	if raw := m["dataset_ids_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return domws.Workspace{}, fmt.Errorf("unmarshal dataset ids: %w", err)
		}
	}
	return domws.Reconstruct(m["id"], m["name"], m["description"], ids), nil
}

// createdAtFromHash reads the creation timestamp, 0 when absent.
func createdAtFromHash(m map[string]string) int64 {
	ts, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
