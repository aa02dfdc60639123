// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It keeps the document model of the MongoDB backend: each collection is a
// table of (id, doc) rows where doc is the record encoded as JSON, so a
// partially populated record is stored exactly as it was sent. Tank ids are
// freshly generated ObjectIDs, so clients see the same id format whichever
// backend is configured.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/tank-man-api/internal/config"
	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.StoragePath and creates the
// collection tables if they do not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.Storage.StoragePath)
}

// Open is New for a bare file path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// rowid keeps insertion order for GetTanks.
	for _, table := range []string{storage.ProfilesCollection, storage.TanksCollection} {
		_, err = db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id  TEXT PRIMARY KEY,
				doc TEXT NOT NULL
			)
		`, table))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.New: create table %s: %w", table, err)
		}
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) CreateProfile(ctx context.Context, p types.Profile) error {
	if p.ID == nil {
		return errors.New("CreateProfile: profile id is not set")
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("CreateProfile: encode: %w", err)
	}

	_, err = s.Db.ExecContext(ctx,
		"INSERT INTO profiles (id, doc) VALUES (?, ?)", *p.ID, doc)
	if err != nil {
		return fmt.Errorf("CreateProfile: exec: %w", err)
	}
	return nil
}

func (s *SQLite) GetProfile(ctx context.Context) (types.Profile, error) {
	var doc []byte
	err := s.Db.QueryRowContext(ctx,
		"SELECT doc FROM profiles ORDER BY rowid LIMIT 1").Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Profile{}, fmt.Errorf("GetProfile: scan: %w", err)
	}

	var p types.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return types.Profile{}, fmt.Errorf("GetProfile: decode: %w", err)
	}
	return p, nil
}

func (s *SQLite) CreateTank(ctx context.Context, t types.Tank) (string, error) {
	id := primitive.NewObjectID().Hex()

	doc, err := encodeTank(t)
	if err != nil {
		return "", fmt.Errorf("CreateTank: %w", err)
	}

	_, err = s.Db.ExecContext(ctx,
		"INSERT INTO tanks (id, doc) VALUES (?, ?)", id, doc)
	if err != nil {
		return "", fmt.Errorf("CreateTank: exec: %w", err)
	}
	return id, nil
}

func (s *SQLite) GetTankByID(ctx context.Context, id string) (types.Tank, error) {
	var doc []byte
	err := s.Db.QueryRowContext(ctx,
		"SELECT doc FROM tanks WHERE id = ? LIMIT 1", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Tank{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Tank{}, fmt.Errorf("GetTankByID: scan: %w", err)
	}

	t, err := decodeTank(id, doc)
	if err != nil {
		return types.Tank{}, fmt.Errorf("GetTankByID: %w", err)
	}
	return t, nil
}

func (s *SQLite) GetTanks(ctx context.Context, limit int64) ([]types.Tank, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, doc FROM tanks ORDER BY rowid LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("GetTanks: query: %w", err)
	}
	defer rows.Close()

	tanks := make([]types.Tank, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("GetTanks: scan row: %w", err)
		}

		t, err := decodeTank(id, doc)
		if err != nil {
			return nil, fmt.Errorf("GetTanks: %w", err)
		}
		tanks = append(tanks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetTanks: rows iteration: %w", err)
	}

	return tanks, nil
}

func (s *SQLite) ReplaceTankByID(ctx context.Context, id string, t types.Tank) error {
	doc, err := encodeTank(t)
	if err != nil {
		return fmt.Errorf("ReplaceTankByID: %w", err)
	}

	res, err := s.Db.ExecContext(ctx,
		"UPDATE tanks SET doc = ? WHERE id = ?", doc, id)
	if err != nil {
		return fmt.Errorf("ReplaceTankByID: exec: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLite) DeleteTankByID(ctx context.Context, id string) error {
	res, err := s.Db.ExecContext(ctx, "DELETE FROM tanks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteTankByID: exec: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close(_ context.Context) error {
	return s.Db.Close()
}

// encodeTank stores everything but the id, which lives in its own column.
func encodeTank(t types.Tank) ([]byte, error) {
	t.ID = nil
	doc, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return doc, nil
}

func decodeTank(id string, doc []byte) (types.Tank, error) {
	var t types.Tank
	if err := json.Unmarshal(doc, &t); err != nil {
		return types.Tank{}, fmt.Errorf("decode: %w", err)
	}
	t.ID = types.String(id)
	return t, nil
}

// requireAffected turns "zero rows touched" into storage.ErrNotFound.
// SQLite counts every row matched by the WHERE clause, changed or not.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
