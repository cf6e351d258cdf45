package postgres

import (
	"context"
	"encoding/json"

	"tvet-connect-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationColumns = `id, title, message, recipient_type, recipient_id, is_read, read_at, data::text, created_at`

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	var data string
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.RecipientType, &n.RecipientID,
		&n.IsRead, &n.ReadAt, &data, &n.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	n.Data = json.RawMessage(data)
	return &n, nil
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	data := "{}"
	if len(n.Data) > 0 {
		data = string(n.Data)
	}
	query := `INSERT INTO notifications (id, title, message, recipient_type, recipient_id, is_read, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)`
	_, err := r.db.Exec(ctx, query, n.ID, n.Title, n.Message, n.RecipientType, n.RecipientID, n.IsRead, data, n.CreatedAt)
	return mapError(err)
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(r.db.QueryRow(ctx, query, id))
}

func (r *notificationRepo) List(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, int64, error) {
	var where string
	var args []interface{}
	if q.RecipientType == domain.RecipientGeneral {
		where = ` WHERE recipient_type = 'general'`
	} else {
		where = ` WHERE recipient_type = 'user' AND recipient_id = $1`
		args = append(args, q.RecipientID)
	}

	rows, err := r.db.Query(ctx, `SELECT `+notificationColumns+` FROM notifications`+where+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []domain.Notification
	var unread int64
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		if !n.IsRead {
			unread++
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

// MarkRead keeps the first read_at so repeated calls change nothing.
func (r *notificationRepo) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	query := `UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 RETURNING ` + notificationColumns
	return scanNotification(r.db.QueryRow(ctx, query, id))
}

func (r *notificationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&n)
	return n, err
}
