package domain

import (
	"context"
	"encoding/json"
	"time"
)

type RecipientType string

const (
	RecipientUser    RecipientType = "user"
	RecipientGeneral RecipientType = "general"
)

func (r RecipientType) Valid() bool {
	switch r {
	case RecipientUser, RecipientGeneral:
		return true
	}
	return false
}

type Notification struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	RecipientType RecipientType   `json:"recipient_type"`
	RecipientID   *string         `json:"recipient_id"`
	IsRead        bool            `json:"is_read"`
	ReadAt        *time.Time      `json:"read_at,omitempty"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AddressedTo reports whether the notification is a user notification for userID.
func (n *Notification) AddressedTo(userID string) bool {
	return n.RecipientType == RecipientUser && n.RecipientID != nil && *n.RecipientID == userID
}

type DispatchRequest struct {
	Title         string                 `json:"title" validate:"required,max=200"`
	Message       string                 `json:"message" validate:"required,max=2000"`
	RecipientType RecipientType          `json:"recipient_type" validate:"required"`
	RecipientID   *string                `json:"recipient_id"`
	Data          map[string]interface{} `json:"data"`
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

// NotificationQuery selects rows either for one recipient or for the general feed.
type NotificationQuery struct {
	RecipientType RecipientType
	RecipientID   string
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	// List returns matching rows newest first and the unread count over the same rows.
	List(ctx context.Context, q NotificationQuery) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type NotificationUsecase interface {
	// Dispatch validates and stores a notification; used by other usecases.
	Dispatch(ctx context.Context, req DispatchRequest) (*Notification, error)
	// Author is Dispatch restricted to TVET administrators.
	Author(ctx context.Context, req DispatchRequest) (*Notification, error)
	ListForViewer(ctx context.Context) (*NotificationList, error)
	Filter(ctx context.Context, q NotificationQuery) (*NotificationList, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
	Remove(ctx context.Context, id string) error
}
