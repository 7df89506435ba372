package token

import (
	"context"
	"errors"
	c "fullauth/internal/core/domain/common"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

const VALUE_CONSTRAINT_NAME = "token_value_idx"

const selectToken = `SELECT id, value, email, purpose, expires_at FROM token`

type PgxTokenRepository struct {
	db db.DBTX
}

func NewPgxRepository(dbtx db.DBTX) *PgxTokenRepository {
	if dbtx == nil {
		panic("Argument dbtx must not be nil.")
	}
	return &PgxTokenRepository{db: dbtx}
}

func (r *PgxTokenRepository) GetByValue(
	ctx context.Context,
	value token.Value,
	purpose token.Purpose,
) (token.Token, error) {
	row := r.db.QueryRow(
		ctx,
		selectToken+` WHERE value = $1 AND purpose = $2`,
		string(value),
		string(purpose),
	)
	return decodeRow(row)
}

// GetByEmail returns the most recently created token of the purpose for email.
func (r *PgxTokenRepository) GetByEmail(
	ctx context.Context,
	email c.Email,
	purpose token.Purpose,
) (token.Token, error) {
	row := r.db.QueryRow(
		ctx,
		selectToken+` WHERE email = $1 AND purpose = $2 ORDER BY id DESC LIMIT 1`,
		string(email),
		string(purpose),
	)
	return decodeRow(row)
}

func (r *PgxTokenRepository) Create(ctx context.Context, input token.CreateInput) (t token.Token, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO token (value, email, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, value, email, purpose, expires_at`,
		string(input.Value),
		string(input.Email),
		string(input.Purpose),
		input.ExpiresAt,
	)
	t, err = scanToken(row)
	if db.IsUniqueViolation(err, VALUE_CONSTRAINT_NAME) {
		return t, token.ErrTokenAlreadyExists
	}
	if err != nil {
		return t, err
	}
	return t, t.Validate()
}

func (r *PgxTokenRepository) Delete(ctx context.Context, id token.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM token WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return token.ErrTokenDoesNotExist
	}
	return nil
}

func decodeRow(row pgx.Row) (t token.Token, err error) {
	t, err = scanToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return t, err
	}
	return t, t.Validate()
}

func scanToken(row pgx.Row) (t token.Token, err error) {
	var (
		id        int64
		value     string
		email     string
		purpose   string
		expiresAt time.Time
	)
	err = row.Scan(&id, &value, &email, &purpose, &expiresAt)
	if err != nil {
		return t, err
	}
	return token.Token{
		ID:        token.ID(id),
		Value:     token.Value(value),
		Email:     c.Email(email),
		Purpose:   token.Purpose(purpose),
		ExpiresAt: expiresAt.UTC(),
	}, nil
}
