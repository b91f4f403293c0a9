package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weiliu/dealscout/internal/types"
)

// DefaultPath is where the profile document lives unless configured otherwise.
const DefaultPath = "profile.json"

// Load reads the profile document from disk. A missing file is not an error:
// the profile starts out with empty lists.
func Load(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Save persists the profile atomically: the document is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a truncated profile visible to the next
// session.
func Save(path string, p *types.Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp profile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp profile: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}
