package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/apetrenko/jobport/internal/common"
	"github.com/apetrenko/jobport/internal/dbx"
	"github.com/apetrenko/jobport/internal/models"
	"github.com/apetrenko/jobport/internal/session/migrations"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore keeps the session in a local sqlite database, one row per
// key ("token" holds the opaque bearer token, "user" the JSON-serialized
// user record).
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens (creating if needed) the session database at dsn and brings
// the schema up to date via the embedded goose migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Load reads the persisted pair. A missing half yields a partial session
// the caller must treat as anonymous. An unparsable user blob wipes the
// store and reports common.ErrMalformedSession; the returned session is
// empty in that case.
func (s *SQLiteStore) Load(ctx context.Context) (models.Session, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil {
		return models.Session{}, err
	}
	raw, err := s.get(ctx, keyUser)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{Token: string(token)}
	if len(raw) > 0 {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			if clearErr := s.Clear(ctx); clearErr != nil {
				return models.Session{}, clearErr
			}
			return models.Session{}, fmt.Errorf("%w: %v", common.ErrMalformedSession, err)
		}
		sess.User = &user
	}
	return sess, nil
}

// Save writes token and user in a single transaction so a crash cannot
// leave half a session behind.
func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to persist incomplete session")
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, raw)
	})
}

// Clear removes every persisted session row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
