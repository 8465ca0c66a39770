package identity

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresProvider is the built-in Provider: accounts live in a
// postgres table, passwords are argon2id hashes, tokens are JWTs.
type PostgresProvider struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	tokens tokenManager
}

func NewPostgresProvider(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	jwtIssuer string,
	jwtSigningKey string,
	jwtTokenTTL time.Duration,
) *PostgresProvider {
	return &PostgresProvider{
		logger: logger,
		pgPool: pgPool,
		tokens: newTokenManager(jwtIssuer, jwtSigningKey, jwtTokenTTL),
	}
}

// Migrate creates the accounts table on startup.
func (p *PostgresProvider) Migrate(ctx context.Context) error {
	const createAccountsQuery = `
CREATE TABLE IF NOT EXISTS accounts (
    uid          TEXT PRIMARY KEY,
    email        TEXT NOT NULL UNIQUE,
    password     TEXT NOT NULL,
    display_name TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL
)
`
	_, err := p.pgPool.Exec(ctx, createAccountsQuery)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to create accounts table")
		return err
	}
	p.logger.Info().Msg("accounts table ready")
	return nil
}

func (p *PostgresProvider) CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error) {
	account := &Account{
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	accountUUID, err := uuid.NewRandom()
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to generate account uuid")
		return nil, err
	}
	account.UID = accountUUID.String()

	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	const insertAccountQuery = `
INSERT INTO accounts (uid,
                      email,
                      password,
                      display_name,
                      created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = p.pgPool.Exec(
		ctx,
		insertAccountQuery,
		account.UID,
		account.Email,
		passwordHash,
		account.DisplayName,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			p.logger.Error().
				Str("email", account.Email).
				Msg("account with this email already exists")
			return nil, ErrEmailTaken
		}

		p.logger.Error().
			Err(err).
			Msg("failed to insert account")
		return nil, err
	}
	p.logger.Debug().
		Str("uid", account.UID).
		Str("email", account.Email).
		Msg("inserted account")

	return account, nil
}

func (p *PostgresProvider) PasswordGrant(ctx context.Context, email, password string) (string, error) {
	var (
		uid          string
		passwordHash string
	)

	const selectAccountByEmailQuery = `
SELECT uid,
       password
FROM accounts
WHERE email = $1
`
	err := p.pgPool.QueryRow(
		ctx,
		selectAccountByEmailQuery,
		email,
	).Scan(
		&uid,
		&passwordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Deliberately indistinguishable from a wrong password.
			p.logger.Warn().
				Str("email", email).
				Msg("account not found")
			return "", ErrInvalidCredentials
		}

		p.logger.Error().
			Err(err).
			Msg("failed to select account by email")
		return "", err
	}

	match, err := argon2id.ComparePasswordAndHash(password, passwordHash)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return "", err
	}
	if !match {
		p.logger.Warn().
			Str("uid", uid).
			Msg("password mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := p.tokens.Issue(uid)
	if err != nil {
		p.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return "", err
	}

	p.logger.Info().
		Str("uid", uid).
		Msg("password grant succeeded")
	return token, nil
}

func (p *PostgresProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, err := p.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	return uid, nil
}

func (p *PostgresProvider) AccountByUID(ctx context.Context, uid string) (*Account, error) {
	account := &Account{UID: uid}

	const selectAccountByUIDQuery = `
SELECT email,
       display_name,
       created_at
FROM accounts
WHERE uid = $1
`
	err := p.pgPool.QueryRow(
		ctx,
		selectAccountByUIDQuery,
		account.UID,
	).Scan(
		&account.Email,
		&account.DisplayName,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.logger.Warn().
				Str("uid", uid).
				Msg("account not found")
			return nil, ErrAccountNotFound
		}

		p.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to select account by uid")
		return nil, err
	}

	return account, nil
}
