package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

type FailedLoginRepository struct {
	db *pgxpool.Pool
}

func NewFailedLoginRepository(db *pgxpool.Pool) *FailedLoginRepository {
	return &FailedLoginRepository{db: db}
}

func (r *FailedLoginRepository) FailedLoginByUserID(ctx context.Context, userID uuid.UUID) (entity.FailedLogin, error) {
	var fl entity.FailedLogin

	q := `SELECT id, user_id, failures FROM failed_logins WHERE user_id = $1`

	err := conn(ctx, r.db).QueryRow(ctx, q, userID).Scan(&fl.ID, &fl.UserID, &fl.Failures)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fl, entity.ErrNotFound
		}

		return fl, err
	}

	return fl, nil
}

// AddFailure appends at to the user's failure history, creating the record on
// the first failure.
func (r *FailedLoginRepository) AddFailure(ctx context.Context, userID uuid.UUID, at time.Time) error {
	q := `
	INSERT INTO failed_logins (id, user_id, failures)
	VALUES ($1, $2, ARRAY[$3::timestamptz])
	ON CONFLICT (user_id) DO UPDATE
	SET failures = array_append(failed_logins.failures, $3::timestamptz)
	`

	_, err := conn(ctx, r.db).Exec(ctx, q, uuid.Must(uuid.NewV4()), userID, at)
	if err != nil {
		return err
	}

	return nil
}

func (r *FailedLoginRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	q := `DELETE FROM failed_logins WHERE user_id = $1`

	_, err := conn(ctx, r.db).Exec(ctx, q, userID)
	if err != nil {
		return err
	}

	return nil
}
