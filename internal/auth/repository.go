package auth

import (
	"database/sql"
	"time"
)

// RevocationRepository persists refresh tokens revoked by logout. Rows are
// kept only until the token they describe would have expired anyway.
type RevocationRepository interface {
	Revoke(tokenHash, userID string, expiresAt time.Time) error
	IsRevoked(tokenHash string) (bool, error)
	DeleteExpired() (int64, error)
}

type revocationRepository struct {
	db *sql.DB
}

func NewRevocationRepository(db *sql.DB) RevocationRepository {
	return &revocationRepository{db: db}
}

func (r *revocationRepository) Revoke(tokenHash, userID string, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO revoked_refresh_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO NOTHING
	`, tokenHash, userID, expiresAt)
	return err
}

func (r *revocationRepository) IsRevoked(tokenHash string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM revoked_refresh_tokens WHERE token_hash = $1)",
		tokenHash,
	).Scan(&revoked)
	return revoked, err
}

func (r *revocationRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM revoked_refresh_tokens WHERE expires_at <= NOW()")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
