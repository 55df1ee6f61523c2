// Package session persists the signed-in state of the client: a logged-in
// flag, the user summary and the session token.
//
// Values live in the metadata table of the client's sqlite database. The user
// summary is stored as JSON and round-trips unchanged through Load.
package session

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pressly/goose/v3"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/client/migrations"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/dbx"

	_ "modernc.org/sqlite"
)

// Metadata keys.
const (
	KeyLoggedIn = "isLoggedIn"
	KeyUser     = "user"
	KeyToken    = "token"
)

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return oops.Code("SESSION_STORE").Wrapf(err, "set goose dialect")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return oops.Code("SESSION_STORE").Wrapf(err, "run migrations")
	}
	return nil
}

// Store reads and writes the session.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
}

// Open opens the sqlite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oops.Code("SESSION_STORE").With("dsn", dsn).Wrapf(err, "open database")
	}
	// a single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLogin records a signed-in user in a single transaction.
func (s *Store) SaveLogin(ctx context.Context, user models.UserSummary, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return oops.Code("SESSION_STORE").Wrapf(err, "encode user summary")
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyLoggedIn, []byte("true")); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUser, data); err != nil {
			return err
		}
		return repo.Set(ctx, KeyToken, []byte(token))
	})
}

// Load returns the persisted session. A store that never saw a login
// returns a zero Session with LoggedIn false.
func (s *Store) Load(ctx context.Context) (models.Session, error) {
	var sess models.Session

	flag, err := s.repo.Get(ctx, KeyLoggedIn)
	if err != nil {
		return sess, err
	}
	if string(flag) != "true" {
		return sess, nil
	}
	sess.LoggedIn = true

	data, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return sess, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess.User); err != nil {
			return sess, oops.Code("SESSION_STORE").Wrapf(err, "decode user summary")
		}
	}

	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return sess, err
	}
	sess.Token = string(token)
	return sess, nil
}

// Current returns the signed-in user or common.ErrNotLoggedIn.
func (s *Store) Current(ctx context.Context) (models.UserSummary, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return models.UserSummary{}, err
	}
	if !sess.LoggedIn {
		return models.UserSummary{}, common.ErrNotLoggedIn
	}
	return sess.User, nil
}

// Clear forgets the session.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
