package usecase

import (
	"context"
	"errors"
	"time"

	"tvet-connect-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Live(ctx context.Context) map[string]string
	// Ready reports dependency status and whether the service can take traffic.
	Ready(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db         Pinger
	redisCheck func(ctx context.Context) error
}

func NewHealthUsecase(db Pinger, redisCheck func(ctx context.Context) error) HealthUsecase {
	if redisCheck == nil {
		redisCheck = redis.HealthCheck
	}
	return &healthUsecase{db: db, redisCheck: redisCheck}
}

func (u *healthUsecase) Live(ctx context.Context) map[string]string {
	return map[string]string{
		"status": "ok",
	}
}

// Ready requires Postgres. Redis is optional: the features using it fail open.
func (u *healthUsecase) Ready(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "redis": "ok"}
	ready := true

	if u.db == nil || u.db.Ping(ctx) != nil {
		status["database"] = "unavailable"
		status["status"] = "unavailable"
		ready = false
	}

	if err := u.redisCheck(ctx); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			status["redis"] = "disabled"
		} else {
			status["redis"] = "unavailable"
			if ready {
				status["status"] = "degraded"
			}
		}
	}
	return status, ready
}
