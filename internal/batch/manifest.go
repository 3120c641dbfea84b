package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ogre-meshxml/internal/convert"
)

// Entry statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ManifestEntry represents one input in the output manifest. Artifact paths
// are relative to the manifest's directory when possible.
type ManifestEntry struct {
	Input   string `json:"input"`
	XML     string `json:"xml,omitempty"`
	Mesh    string `json:"mesh,omitempty"`
	Preview string `json:"preview,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// NewManifest turns batch results into manifest entries.
func NewManifest(dir string, results []convert.Result) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Input:   relTo(dir, r.Input),
			XML:     relTo(dir, r.XML),
			Mesh:    relTo(dir, r.Mesh),
			Preview: relTo(dir, r.Preview),
			Status:  StatusOK,
		}
		if r.Err != nil {
			e.Status = StatusFailed
			e.Error = r.Err.Error()
		}
		entries[i] = e
	}
	return entries
}

// WriteManifest writes the manifest for results to path.
func WriteManifest(path string, results []convert.Result) error {
	entries := NewManifest(filepath.Dir(path), results)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

func relTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
