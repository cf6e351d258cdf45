package postgres

import (
	"context"
	"fmt"
	"strings"

	"tvet-connect-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectionColumns = `id, user_id, connected_user_id, status, created_at, updated_at`

// pairCondition matches the unordered pair using the same expression as connections_pair_idx.
const pairCondition = `LEAST(user_id, connected_user_id) = LEAST($1::uuid, $2::uuid)
	AND GREATEST(user_id, connected_user_id) = GREATEST($1::uuid, $2::uuid)`

type connectionRepo struct {
	db *pgxpool.Pool
}

func NewConnectionRepository(db *pgxpool.Pool) domain.ConnectionRepository {
	return &connectionRepo{db: db}
}

func scanConnection(row pgx.Row) (*domain.Connection, error) {
	var c domain.Connection
	if err := row.Scan(&c.ID, &c.RequesterID, &c.TargetID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// Create relies on connections_pair_idx: of two racing inserts for the same pair one gets 23505.
func (r *connectionRepo) Create(ctx context.Context, c *domain.Connection) error {
	query := `INSERT INTO connections (id, user_id, connected_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, c.ID, c.RequesterID, c.TargetID, c.Status, c.CreatedAt, c.UpdatedAt)
	return mapError(err)
}

func (r *connectionRepo) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE id = $1`
	return scanConnection(r.db.QueryRow(ctx, query, id))
}

func (r *connectionRepo) GetBetween(ctx context.Context, a, b string) (*domain.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE ` + pairCondition
	return scanConnection(r.db.QueryRow(ctx, query, a, b))
}

// Respond is a single conditional UPDATE so that a connection is answered at most once.
func (r *connectionRepo) Respond(ctx context.Context, id, targetID string, status domain.ConnectionStatus) (*domain.Connection, error) {
	query := `UPDATE connections SET status = $3, updated_at = NOW()
		WHERE id = $1 AND connected_user_id = $2 AND status = 'pending'
		RETURNING ` + connectionColumns
	return scanConnection(r.db.QueryRow(ctx, query, id, targetID, status))
}

func (r *connectionRepo) DeleteBetween(ctx context.Context, a, b string) (*domain.Connection, error) {
	query := `DELETE FROM connections WHERE ` + pairCondition + ` RETURNING ` + connectionColumns
	return scanConnection(r.db.QueryRow(ctx, query, a, b))
}

func (r *connectionRepo) List(ctx context.Context, f domain.ConnectionFilter) ([]domain.Connection, int64, error) {
	conds := []string{}
	args := []interface{}{f.UserID}

	switch f.Direction {
	case domain.DirectionOutgoing:
		conds = append(conds, "user_id = $1")
	case domain.DirectionIncoming:
		conds = append(conds, "connected_user_id = $1")
	default:
		conds = append(conds, "(user_id = $1 OR connected_user_id = $1)")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM connections`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	args = append(args, limit, domain.Offset(page, limit))
	query := fmt.Sprintf(`SELECT %s FROM connections%s ORDER BY updated_at DESC, id LIMIT $%d OFFSET $%d`,
		connectionColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, 0, err
		}
		conns = append(conns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return conns, total, nil
}

func (r *connectionRepo) CountByStatus(ctx context.Context) (map[domain.ConnectionStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM connections GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ConnectionStatus]int64)
	for rows.Next() {
		var status domain.ConnectionStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
