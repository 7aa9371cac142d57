package snapshot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Callable-APIs/infra/internal/types"
)

const filePrefix = "discovered_resources_"

// Store reads and writes discovery snapshots as timestamped JSON files in a
// single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Save persists a snapshot to a new timestamped file and returns its path.
// The data is written to a temporary file first and renamed into place so a
// crashed run never leaves a truncated snapshot behind.
func (s *Store) Save(snap types.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("❌ Failed to create output directory %s: %v", s.dir, err)
	}

	filename := fmt.Sprintf("%s%s.json", filePrefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("❌ Failed to marshal snapshot: %v", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("❌ Failed to write snapshot file: %v", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("❌ Failed to finalize snapshot file: %v", err)
	}

	return path, nil
}

// LoadLatest loads the newest snapshot per region. Each snapshot file is
// classified by the availability zones of the resources it contains; when
// several files map to the same region only the most recently modified one
// wins. Every resource in the result carries its region.
func (s *Store) LoadLatest(defaultRegion string) (map[string]types.Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no discovery snapshots found in %s: run 'infra discover' first", s.dir)
		}
		return nil, fmt.Errorf("❌ Failed to read snapshot directory %s: %v", s.dir, err)
	}

	type candidate struct {
		path    string
		modTime time.Time
		snap    types.Snapshot
	}
	latest := map[string]candidate{}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(s.dir, name)
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to stat snapshot file %s: %v", path, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to read snapshot file %s: %v", path, err)
		}

		snap := types.NewSnapshot()
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("❌ Failed to parse snapshot file %s: %v", path, err)
		}

		region, inferred := ClassifyRegion(snap, defaultRegion)
		if !inferred {
			slog.Warn("⚠️ Could not infer region from snapshot contents, assuming default region",
				"file", name, "region", region)
		}

		current, exists := latest[region]
		if !exists || info.ModTime().After(current.modTime) {
			latest[region] = candidate{path: path, modTime: info.ModTime(), snap: snap}
		}
	}

	if len(latest) == 0 {
		return nil, fmt.Errorf("no discovery snapshots found in %s: run 'infra discover' first", s.dir)
	}

	result := make(map[string]types.Snapshot, len(latest))
	for region, c := range latest {
		for kind, resources := range c.snap {
			for i := range resources {
				resources[i].Region = region
			}
			c.snap[kind] = resources
		}
		result[region] = c.snap
		slog.Info("✅ Loaded discovery snapshot", "region", region, "file", filepath.Base(c.path), "resources", c.snap.Total())
	}

	return result, nil
}

// Regions returns the sorted region keys of a loaded snapshot set.
func Regions(snapshots map[string]types.Snapshot) []string {
	regions := make([]string, 0, len(snapshots))
	for region := range snapshots {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
