// Package session manages the per-run workspace: the ranked and shortlist
// snapshots, per-item detail records, and the final report. Everything here
// is re-creatable session state, not configuration.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/weiliu/dealscout/internal/types"
)

// DefaultWorkspace is the workspace directory unless configured otherwise.
const DefaultWorkspace = "data"

// Artifact file names inside the workspace.
const (
	rankedFile    = "search_results.json"
	shortlistFile = "shortlist.json"
	detailsDir    = "details"
	reportFile    = "report.md"
)

// Store is the filesystem-backed session artifact store.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir (DefaultWorkspace when empty).
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultWorkspace
	}
	return &Store{root: dir}
}

// Root returns the workspace directory.
func (s *Store) Root() string { return s.root }

// Reset clears prior session artifacts and recreates the workspace layout.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("clearing workspace %s: %w", s.root, err)
	}
	if err := os.MkdirAll(filepath.Join(s.root, detailsDir), 0o755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", s.root, err)
	}
	return nil
}

// SaveRanked persists the ranked-and-scored snapshot.
func (s *Store) SaveRanked(products []types.Product) error {
	return s.writeJSON(rankedFile, products)
}

// LoadRanked reads back the ranked snapshot.
func (s *Store) LoadRanked() ([]types.Product, error) {
	var products []types.Product
	if err := s.readJSON(rankedFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SaveShortlist persists the selected-shortlist snapshot.
func (s *Store) SaveShortlist(result *types.SelectionResult) error {
	return s.writeJSON(shortlistFile, result)
}

// LoadShortlist reads back the shortlist snapshot.
func (s *Store) LoadShortlist() (*types.SelectionResult, error) {
	var result types.SelectionResult
	if err := s.readJSON(shortlistFile, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WriteDetail stores one per-item detail record, keyed by product id. This
// implements collect.DetailSink.
func (s *Store) WriteDetail(record types.DetailRecord) error {
	if record.ID == "" {
		return fmt.Errorf("detail record without id")
	}
	return s.writeJSON(filepath.Join(detailsDir, record.ID+".json"), record)
}

// LoadDetails reads every detail record written this session, in directory
// order.
func (s *Store) LoadDetails() ([]types.DetailRecord, error) {
	dir := filepath.Join(s.root, detailsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading details dir: %w", err)
	}

	var records []types.DetailRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		var record types.DetailRecord
		if err := s.readJSON(filepath.Join(detailsDir, entry.Name()), &record); err != nil {
			log.Printf("[session] skipping unreadable detail record %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveReport persists the final report document.
func (s *Store) SaveReport(markdown string) error {
	path := filepath.Join(s.root, reportFile)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReportPath returns where the report document lands.
func (s *Store) ReportPath() string {
	return filepath.Join(s.root, reportFile)
}

// Cleanup removes transient artifacts (detail records) after a run. The
// ranked and shortlist snapshots stay inspectable. Cleanup never fails; any
// problem is logged and swallowed.
func (s *Store) Cleanup() {
	if err := os.RemoveAll(filepath.Join(s.root, detailsDir)); err != nil {
		log.Printf("[session] cleanup failed: %v", err)
	}
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
