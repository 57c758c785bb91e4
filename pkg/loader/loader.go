package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/milgraph/milgraph/pkg/entity"
)

// Sentinel errors returned by the loader.
var (
	ErrNotFound    = errors.New("loader: database file not found")
	ErrInvalidJSON = errors.New("loader: invalid JSON")
)

// DefaultDatabases maps the conventional database names to their filenames
// under the data directory.
var DefaultDatabases = map[string]string{
	"military_assets":  "military_assets.json",
	"organizations":    "organizations.json",
	"personnel":        "personnel.json",
	"geographic_areas": "geographic_areas.json",
	"vehicle_types":    "vehicle_types.json",
}

// Loader reads entity databases from JSON files. Files that fail strict
// parsing are run through JSON repair before being rejected.
type Loader struct {
	dataDir string
	logger  *slog.Logger

	mu    sync.Mutex
	state map[string]fileState
}

type fileState struct {
	checksum string
	modTime  time.Time
}

// New creates a Loader rooted at dataDir.
func New(dataDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dataDir: dataDir,
		logger:  logger,
		state:   make(map[string]fileState),
	}
}

// Load reads one database file and returns its collections. The file must
// hold a JSON object mapping collection names to arrays of records.
func (l *Loader) Load(filename string) (entity.Collections, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dataDir, filename)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	collections, err := decode(raw)
	if err != nil {
		// Real-world exports are often truncated or hand-edited. Repair
		// once before giving up.
		repaired, repairErr := jsonrepair.JSONRepair(string(raw))
		if repairErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJSON, path, err)
		}
		collections, err = decode([]byte(repaired))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJSON, path, err)
		}
		l.logger.Warn("repaired malformed database file", "path", path)
	}

	l.remember(path, raw)
	l.logger.Info("loaded database", "path", path, "collections", len(collections),
		"entities", countEntities(collections))
	return collections, nil
}

// LoadAll reads every named database, returning per-database collections.
// Missing files are logged and skipped; other errors abort the load.
func (l *Loader) LoadAll(databases map[string]string) (map[string]entity.Collections, error) {
	if databases == nil {
		databases = DefaultDatabases
	}

	names := make([]string, 0, len(databases))
	for name := range databases {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := make(map[string]entity.Collections, len(databases))
	for _, name := range names {
		collections, err := l.Load(databases[name])
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				l.logger.Warn("skipping missing database", "database", name, "file", databases[name])
				continue
			}
			return nil, fmt.Errorf("loading database %s: %w", name, err)
		}
		loaded[name] = collections
	}
	return loaded, nil
}

// Changed reports whether the file differs from the last loaded state, by
// modification time first and checksum second.
func (l *Loader) Changed(filename string) (bool, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dataDir, filename)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return false, err
	}

	l.mu.Lock()
	prev, ok := l.state[path]
	l.mu.Unlock()
	if !ok {
		return true, nil
	}
	if info.ModTime().Equal(prev.modTime) {
		return false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return checksum(raw) != prev.checksum, nil
}

func (l *Loader) remember(path string, raw []byte) {
	state := fileState{checksum: checksum(raw)}
	if info, err := os.Stat(path); err == nil {
		state.modTime = info.ModTime()
	}
	l.mu.Lock()
	l.state[path] = state
	l.mu.Unlock()
}

// decode keeps the keys whose values are record arrays. Database exports
// also carry top-level metadata fields (title, description, _metadata);
// those are not collections and are skipped.
func decode(raw []byte) (entity.Collections, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	collections := make(entity.Collections)
	for name, value := range doc {
		items, ok := value.([]any)
		if !ok {
			continue
		}
		records := make([]entity.Record, 0, len(items))
		for _, item := range items {
			// Non-object entries come through as nil records so that
			// Validate can flag them.
			record, _ := item.(map[string]any)
			records = append(records, record)
		}
		collections[name] = records
	}
	return collections, nil
}

func checksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func countEntities(collections entity.Collections) int {
	total := 0
	for _, records := range collections {
		total += len(records)
	}
	return total
}
