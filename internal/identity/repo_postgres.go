package identity

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard-platform/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore backs the Store contract with a users table:
//
//	CREATE TABLE users (
//	  username      TEXT PRIMARY KEY,
//	  password_hash TEXT NOT NULL,
//	  first_name    TEXT NOT NULL,
//	  last_name     TEXT NOT NULL,
//	  email         TEXT NOT NULL,
//	  is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
//	  created_at    TIMESTAMPTZ NOT NULL
//	)
type PostgresStore struct {
	db *sql.DB

	// bcryptCost is injectable so tests can use bcrypt.MinCost.
	bcryptCost int
	clock      func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, bcryptCost: DefaultBcryptCost, clock: time.Now}
}

const uniqueViolation = "23505"

func (s *PostgresStore) VerifyCredentials(ctx context.Context, username, password string) (UserIdentity, error) {
	const q = `
SELECT username, password_hash, is_admin
FROM users
WHERE username = $1
`
	var (
		u    UserIdentity
		hash string
	)
	if err := s.db.QueryRowContext(ctx, q, username).Scan(&u.Username, &hash, &u.IsAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserIdentity{}, ErrNoSuchUser
		}
		return UserIdentity{}, err
	}

	if err := ComparePassword(hash, password); err != nil {
		return UserIdentity{}, err
	}
	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, p Profile) (UserIdentity, error) {
	hash, err := HashPassword(p.Password, s.bcryptCost)
	if err != nil {
		return UserIdentity{}, err
	}

	now := s.clock().UTC()

	var out UserIdentity
	err = utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO users (username, password_hash, first_name, last_name, email, is_admin, created_at)
VALUES ($1, $2, $3, $4, $5, FALSE, $6)
RETURNING username, is_admin
`
		if err := tx.QueryRowContext(ctx, q,
			p.Username,
			hash,
			p.FirstName,
			p.LastName,
			p.Email,
			now,
		).Scan(&out.Username, &out.IsAdmin); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return UserIdentity{}, err
	}
	return out, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (UserIdentity, error) {
	const q = `
SELECT username, is_admin
FROM users
WHERE username = $1
`
	var u UserIdentity
	if err := s.db.QueryRowContext(ctx, q, username).Scan(&u.Username, &u.IsAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserIdentity{}, ErrNoSuchUser
		}
		return UserIdentity{}, err
	}
	return u, nil
}
