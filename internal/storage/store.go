// Package storage persists scan runs: a SQLite index of run metadata
// plus one CSV profile file per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/icrf-tools/icrlab/internal/plasma"
	"github.com/icrf-tools/icrlab/internal/scan"
)

type Store struct {
	db      *sqlx.DB
	baseDir string
}

// Open opens or creates the run store under baseDir.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := filepath.Join(baseDir, "runs.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db, baseDir: baseDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		ion TEXT NOT NULL,
		z INTEGER NOT NULL,
		a INTEGER NOT NULL,
		coil_current REAL NOT NULL,
		frequency REAL NOT NULL,
		max_harmonic INTEGER NOT NULL,
		layer_count INTEGER NOT NULL,
		points INTEGER NOT NULL,
		layers_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RunMeta is one row of the run index.
type RunMeta struct {
	ID          string  `db:"id" json:"id"`
	CreatedAt   int64   `db:"created_at" json:"created_at"`
	Ion         string  `db:"ion" json:"ion"`
	Z           int     `db:"z" json:"z"`
	A           int     `db:"a" json:"a"`
	CoilCurrent float64 `db:"coil_current" json:"coil_current"`
	Frequency   float64 `db:"frequency" json:"frequency"`
	MaxHarmonic int     `db:"max_harmonic" json:"max_harmonic"`
	LayerCount  int     `db:"layer_count" json:"layer_count"`
	Points      int     `db:"points" json:"points"`
	LayersJSON  string  `db:"layers_json" json:"-"`
}

// Created returns the run timestamp.
func (m *RunMeta) Created() time.Time {
	return time.Unix(m.CreatedAt, 0)
}

// Layers decodes the resonance layers recorded with the run.
func (m *RunMeta) Layers() ([]plasma.Layer, error) {
	var layers []plasma.Layer
	if err := json.Unmarshal([]byte(m.LayersJSON), &layers); err != nil {
		return nil, fmt.Errorf("decode layers for run %s: %w", m.ID, err)
	}
	return layers, nil
}

// Save indexes a scan and writes its profile CSV. Returns the run id.
func (s *Store) Save(prof *scan.Profile) (string, error) {
	id := fmt.Sprintf("%s_%s", prof.Params.Ion, uuid.NewString()[:8])

	layersJSON, err := json.Marshal(prof.Layers)
	if err != nil {
		return "", err
	}

	meta := RunMeta{
		ID:          id,
		CreatedAt:   time.Now().Unix(),
		Ion:         prof.Params.Ion.String(),
		Z:           prof.Params.Ion.Z,
		A:           prof.Params.Ion.A,
		CoilCurrent: prof.Params.Current,
		Frequency:   prof.Params.Frequency,
		MaxHarmonic: prof.Params.MaxHarmonic,
		LayerCount:  len(prof.Layers),
		Points:      len(prof.Radii),
		LayersJSON:  string(layersJSON),
	}

	// profile file first: an insert failure can drop the file, but a
	// file failure must not leave an index row without a profile
	if err := s.writeProfile(id, prof); err != nil {
		return "", err
	}

	_, err = s.db.NamedExec(`INSERT INTO runs
		(id, created_at, ion, z, a, coil_current, frequency, max_harmonic, layer_count, points, layers_json)
		VALUES (:id, :created_at, :ion, :z, :a, :coil_current, :frequency, :max_harmonic, :layer_count, :points, :layers_json)`,
		meta)
	if err != nil {
		os.Remove(s.profilePath(id))
		return "", fmt.Errorf("insert run %s: %w", id, err)
	}

	slog.Info("run saved", "id", id, "ion", meta.Ion, "layers", meta.LayerCount)
	return id, nil
}

func (s *Store) writeProfile(id string, prof *scan.Profile) error {
	f, err := os.Create(s.profilePath(id))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"radius_m", "field_t"}); err != nil {
		return err
	}
	for i := range prof.Radii {
		row := []string{
			strconv.FormatFloat(prof.Radii[i], 'f', 6, 64),
			strconv.FormatFloat(prof.Field[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) profilePath(id string) string {
	return filepath.Join(s.baseDir, id+".csv")
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMeta, error) {
	runs := make([]RunMeta, 0)
	err := s.db.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC, id")
	return runs, err
}

// Load fetches one run's metadata.
func (s *Store) Load(id string) (*RunMeta, error) {
	var meta RunMeta
	if err := s.db.Get(&meta, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return &meta, nil
}

// LoadProfile reads a run's sampled radii and field values back.
func (s *Store) LoadProfile(id string) (radii, field []float64, err error) {
	f, err := os.Open(s.profilePath(id))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("profile %s: row %d: expected 2 fields, got %d", id, i+2, len(rec))
		}
		rv, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("profile %s: row %d: bad radius: %w", id, i+2, err)
		}
		bv, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("profile %s: row %d: bad field: %w", id, i+2, err)
		}
		radii = append(radii, rv)
		field = append(field, bv)
	}
	return radii, field, nil
}
