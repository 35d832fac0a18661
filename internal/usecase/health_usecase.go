package usecase

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase struct {
	db *pgxpool.Pool
}

func NewHealthUsecase(db *pgxpool.Pool) *HealthUsecase {
	return &HealthUsecase{db: db}
}

// Ping verifies database connectivity for the health endpoint.
func (u *HealthUsecase) Ping(ctx context.Context) error {
	return u.db.Ping(ctx)
}
