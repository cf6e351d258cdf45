package postgres

import (
	"context"

	"tvet-connect-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) CountUsersByRole(ctx context.Context) (map[domain.Role]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Role]int64)
	for rows.Next() {
		var role domain.Role
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *adminRepo) CountPendingApprovals(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'private_sector' AND NOT is_approved`).Scan(&n)
	return n, err
}

// Approve only matches unapproved private_sector rows, so approval happens exactly once.
func (r *adminRepo) Approve(ctx context.Context, userID, approverID string) (*domain.User, error) {
	query := `UPDATE users SET is_approved = TRUE, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND role = 'private_sector' AND NOT is_approved
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, userID, approverID))
}
