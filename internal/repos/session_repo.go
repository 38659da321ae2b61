package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"catalogadmin/internal/domain"
)

// tsLayout is fixed width so expires_at compares correctly as text.
const tsLayout = "2006-01-02T15:04:05.000Z"

type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

type sessionRow struct {
	Token     string `db:"token"`
	ExpiresAt string `db:"expires_at"`
}

// Bind stores (or replaces) the API session behind sid.
func (r *SessionRepo) Bind(sid string, s domain.Session) error {
	_, err := r.db.Exec(`INSERT INTO sessions(id,token,expires_at,last_seen)
                         VALUES(?,?,?,CURRENT_TIMESTAMP)
                         ON CONFLICT(id) DO UPDATE SET token=excluded.token,expires_at=excluded.expires_at,last_seen=CURRENT_TIMESTAMP`,
		sid, s.Token, s.ExpiresAt.UTC().Format(tsLayout))
	return err
}

// Get returns the session behind sid, or sql.ErrNoRows.
func (r *SessionRepo) Get(sid string) (domain.Session, error) {
	var row sessionRow
	if err := r.db.Get(&row, `SELECT token,expires_at FROM sessions WHERE id=?`, sid); err != nil {
		return domain.Session{}, err
	}
	exp, err := time.ParseInLocation(tsLayout, row.ExpiresAt, time.UTC)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session %s: bad expires_at: %w", sid, err)
	}
	_, _ = r.db.Exec(`UPDATE sessions SET last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return domain.Session{Token: row.Token, ExpiresAt: exp}, nil
}

func (r *SessionRepo) Delete(sid string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}

// PurgeExpired removes rows whose expiry has passed and reports how many.
func (r *SessionRepo) PurgeExpired() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC().Format(tsLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
