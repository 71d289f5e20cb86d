package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

type ChallengeRepository struct {
	db *pgxpool.Pool
}

func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) SaveChallenge(ctx context.Context, challenge entity.Challenge) error {
	q := `
	INSERT INTO challenges (id, user_id, code_hash, used, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := conn(ctx, r.db).Exec(
		ctx,
		q,
		challenge.ID,
		challenge.UserID,
		challenge.CodeHash,
		challenge.Used,
		challenge.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// RecentChallenges returns at most limit challenges of the user created after
// since, newest first.
func (r *ChallengeRepository) RecentChallenges(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
	limit int,
) ([]entity.Challenge, error) {
	q, args, err := sq.Select("id", "user_id", "code_hash", "used", "created_at").
		From("challenges").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"created_at": since}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)). //nolint:gosec
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	challenges := make([]entity.Challenge, 0, limit)

	for rows.Next() {
		var c entity.Challenge

		err = rows.Scan(&c.ID, &c.UserID, &c.CodeHash, &c.Used, &c.CreatedAt)
		if err != nil {
			return nil, err
		}

		challenges = append(challenges, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}

// MarkAsUsed flips used to true. It returns entity.ErrNotFound when the
// challenge does not exist or is already used.
func (r *ChallengeRepository) MarkAsUsed(ctx context.Context, challengeID uuid.UUID) error {
	q := `UPDATE challenges SET used = TRUE WHERE id = $1 AND used = FALSE`

	result, err := conn(ctx, r.db).Exec(ctx, q, challengeID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *ChallengeRepository) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	q, args, err := sq.Delete("challenges").
		Where(sq.Lt{"created_at": before}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	result, err := conn(ctx, r.db).Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
