package viewer

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/structviz/cifview/internal/db"
	"github.com/structviz/cifview/internal/structure"
)

// Store persists structure records in SQLite and their raw bytes on disk.
type Store struct {
	db     *db.DB
	rawDir string
}

// NewStore creates a Store writing raw files under dataDir/structures.
func NewStore(database *db.DB, dataDir string) (*Store, error) {
	rawDir := filepath.Join(dataDir, "structures")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating structures directory: %w", err)
	}
	return &Store{db: database, rawDir: rawDir}, nil
}

// Create stores the record and its raw bytes. The ID and upload time are
// assigned here.
func (s *Store) Create(ctx context.Context, rec Record, raw []byte) (Record, error) {
	rec.ID = uuid.NewString()
	rec.UploadedAt = time.Now().UTC().Truncate(time.Second)

	if err := os.WriteFile(s.rawPath(rec.ID, rec.Format), raw, 0o644); err != nil {
		return Record{}, fmt.Errorf("writing raw structure: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO structures (id, name, format, size_bytes, title, models, chains, residues, atoms, het_atoms, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(rec.Format), rec.SizeBytes, rec.Title,
		rec.Models, rec.Chains, rec.Residues, rec.Atoms, rec.HetAtoms,
		rec.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		os.Remove(s.rawPath(rec.ID, rec.Format))
		return Record{}, fmt.Errorf("inserting structure record: %w", err)
	}

	return rec, nil
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, format, size_bytes, title, models, chains, residues, atoms, het_atoms, uploaded_at
		FROM structures ORDER BY uploaded_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing structures: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the record with the given ID, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, format, size_bytes, title, models, chains, residues, atoms, het_atoms, uploaded_at
		FROM structures WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record and its raw file.
func (s *Store) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM structures WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting structure record: %w", err)
	}
	if err := os.Remove(s.rawPath(rec.ID, rec.Format)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing raw structure: %w", err)
	}
	return nil
}

// ReadRaw returns the original uploaded bytes for a record.
func (s *Store) ReadRaw(rec *Record) ([]byte, error) {
	data, err := os.ReadFile(s.rawPath(rec.ID, rec.Format))
	if err != nil {
		return nil, fmt.Errorf("reading raw structure %s: %w", rec.ID, err)
	}
	return data, nil
}

func (s *Store) rawPath(id string, format structure.Format) string {
	return filepath.Join(s.rawDir, id+"."+string(format))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var format, uploaded string
	err := row.Scan(&rec.ID, &rec.Name, &format, &rec.SizeBytes, &rec.Title,
		&rec.Models, &rec.Chains, &rec.Residues, &rec.Atoms, &rec.HetAtoms, &uploaded)
	if err != nil {
		return Record{}, err
	}
	rec.Format = structure.Format(format)
	if t, perr := time.Parse(time.RFC3339, uploaded); perr == nil {
		rec.UploadedAt = t
	}
	return rec, nil
}
