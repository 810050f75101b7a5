package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// SQLiteStore persists cookies in the cookies table. Expiry is stored as unix
// seconds, 0 marks a session cookie.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Set(ctx context.Context, c *http.Cookie) error {
	n, live := normalize(c, s.now())
	if !live {
		return s.Delete(ctx, n.Name, n.Path)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cookies (name, path, value, expires, same_site, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, path) DO UPDATE SET
			value = excluded.value,
			expires = excluded.expires,
			same_site = excluded.same_site,
			secure = excluded.secure,
			http_only = excluded.http_only
	`, n.Name, n.Path, n.Value, toUnix(n.Expires), int(n.SameSite), n.Secure, n.HttpOnly)
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", n.Name, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, name, path string) (*http.Cookie, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, path, value, expires, same_site, secure, http_only
		FROM cookies WHERE name = ? AND path = ?`, name, path)

	c, err := scanCookie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}
	if expired(c, s.now()) {
		return nil, s.Delete(ctx, name, path)
	}
	return c, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ? AND path = ?`, name, path); err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*http.Cookie, error) {
	now := s.now()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cookies WHERE expires <> 0 AND expires <= ?`, now.Unix()); err != nil {
		return nil, fmt.Errorf("failed to purge cookies: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, path, value, expires, same_site, secure, http_only
		FROM cookies ORDER BY name, path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var out []*http.Cookie
	for rows.Next() {
		c, err := scanCookie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if !expired(c, now) {
			out = append(out, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCookie(row scanner) (*http.Cookie, error) {
	var (
		c        http.Cookie
		expires  int64
		sameSite int
	)
	if err := row.Scan(&c.Name, &c.Path, &c.Value, &expires, &sameSite, &c.Secure, &c.HttpOnly); err != nil {
		return nil, err
	}
	if expires != 0 {
		c.Expires = time.Unix(expires, 0)
	}
	c.SameSite = http.SameSite(sameSite)
	return &c, nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
