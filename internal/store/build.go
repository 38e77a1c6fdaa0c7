package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/ir"
)

// ErrNotFound is returned when no build matches a lookup.
var ErrNotFound = errors.New("build not found")

// Build is one recorded augmentation.
type Build struct {
	ID           string        `json:"id"`
	Seq          int64         `json:"seq"`
	SchemaHash   string        `json:"schema_hash"`
	ConfigHash   string        `json:"config_hash"`
	Config       config.Config `json:"config"`
	SDL          string        `json:"sdl"`
	ModelVersion string        `json:"model_version"`
	ToolVersion  string        `json:"tool_version"`
	CreatedAt    time.Time     `json:"created_at"`
}

// RecordBuild stores a build and reports whether a new row was written.
//
// SchemaHash and SDL must be set. ID, Seq, ConfigHash, the versions and
// CreatedAt are assigned here. If the same schema hash was already
// recorded with an equal config, the existing build is returned with
// inserted=false and nothing is written.
func (s *Store) RecordBuild(ctx context.Context, b Build) (Build, bool, error) {
	if b.SchemaHash == "" {
		return Build{}, false, fmt.Errorf("record build: schema hash is required")
	}
	cfgJSON, err := marshalConfig(b.Config)
	if err != nil {
		return Build{}, false, fmt.Errorf("record build: %w", err)
	}
	b.ConfigHash = ir.ConfigHash([]byte(cfgJSON))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Build{}, false, fmt.Errorf("record build: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := scanBuild(tx.QueryRowContext(ctx, selectBuild+`
		WHERE schema_hash = ? AND config_hash = ?
	`, b.SchemaHash, b.ConfigHash))
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return Build{}, false, fmt.Errorf("record build: select existing: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM builds`).Scan(&b.Seq); err != nil {
		return Build{}, false, fmt.Errorf("record build: next seq: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Build{}, false, fmt.Errorf("record build: generate id: %w", err)
	}
	b.ID = id.String()
	b.ModelVersion = ir.ModelVersion
	b.ToolVersion = ir.ToolVersion
	b.CreatedAt = s.clock.Now().UTC().Truncate(time.Second)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds
		(id, seq, schema_hash, config_hash, config_json, sdl, model_version, tool_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.Seq,
		b.SchemaHash,
		b.ConfigHash,
		cfgJSON,
		b.SDL,
		b.ModelVersion,
		b.ToolVersion,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Build{}, false, fmt.Errorf("record build: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Build{}, false, fmt.Errorf("record build: commit: %w", err)
	}
	return b, true, nil
}

// LatestByHash returns the most recently recorded build of a schema,
// whatever its config. Returns ErrNotFound if the schema was never built.
func (s *Store) LatestByHash(ctx context.Context, schemaHash string) (Build, error) {
	b, err := scanBuild(s.db.QueryRowContext(ctx, selectBuild+`
		WHERE schema_hash = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, schemaHash))
	if err != nil {
		return Build{}, fmt.Errorf("latest build %s: %w", schemaHash, err)
	}
	return b, nil
}

// ListBuilds returns up to limit builds, newest first. A limit of zero or
// less returns every build.
//
// Returns an empty slice (not nil) when the registry is empty.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, selectBuild+`
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

const selectBuild = `
	SELECT id, seq, schema_hash, config_hash, config_json, sdl, model_version, tool_version, created_at
	FROM builds
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (Build, error) {
	var (
		b         Build
		cfgJSON   string
		createdAt string
	)
	err := row.Scan(
		&b.ID,
		&b.Seq,
		&b.SchemaHash,
		&b.ConfigHash,
		&cfgJSON,
		&b.SDL,
		&b.ModelVersion,
		&b.ToolVersion,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrNotFound
	}
	if err != nil {
		return Build{}, fmt.Errorf("scan build: %w", err)
	}

	if b.Config, err = unmarshalConfig(cfgJSON); err != nil {
		return Build{}, fmt.Errorf("scan build %s: %w", b.ID, err)
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Build{}, fmt.Errorf("scan build %s: parse created_at: %w", b.ID, err)
	}
	return b, nil
}
