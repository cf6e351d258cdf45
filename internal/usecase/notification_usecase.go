package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/metrics"

	"github.com/google/uuid"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	metrics          *metrics.Metrics
	now              func() time.Time
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository, m *metrics.Metrics) domain.NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		metrics:          m,
		now:              time.Now,
	}
}

// Dispatch validates and stores a notification. A general notification never keeps a recipient.
func (u *notificationUsecase) Dispatch(ctx context.Context, req domain.DispatchRequest) (*domain.Notification, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if req.Title == "" || req.Message == "" {
		return nil, apperror.BadRequest("Title and message are required")
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var recipientID *string
	switch req.RecipientType {
	case domain.RecipientUser:
		if req.RecipientID == nil || strings.TrimSpace(*req.RecipientID) == "" {
			return nil, apperror.BadRequest("recipient_id is required for user notifications")
		}
		id := strings.TrimSpace(*req.RecipientID)
		if _, err := uuid.Parse(id); err != nil {
			return nil, apperror.BadRequest("recipient_id must be a valid user id")
		}
		recipientID = &id
	case domain.RecipientGeneral:
		recipientID = nil
	default:
		return nil, apperror.BadRequest("recipient_type must be one of: user, general")
	}

	data := json.RawMessage(`{}`)
	if len(req.Data) > 0 {
		raw, err := json.Marshal(req.Data)
		if err != nil {
			return nil, apperror.BadRequest("data must be a JSON object")
		}
		data = raw
	}

	n := &domain.Notification{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Message:       req.Message,
		RecipientType: req.RecipientType,
		RecipientID:   recipientID,
		IsRead:        false,
		Data:          data,
		CreatedAt:     u.now().UTC(),
	}

	if err := u.notificationRepo.Create(ctx, n); err != nil {
		u.metrics.NotificationDispatched(string(n.RecipientType), "failed")
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recipient not found")
		}
		return nil, internalError("create notification", err)
	}

	u.metrics.NotificationDispatched(string(n.RecipientType), "stored")
	return n, nil
}

func (u *notificationUsecase) Author(ctx context.Context, req domain.DispatchRequest) (*domain.Notification, error) {
	if _, err := requireTVET(ctx); err != nil {
		return nil, err
	}
	return u.Dispatch(ctx, req)
}

// ListForViewer returns the caller's own notifications, or the general feed for anonymous visitors.
func (u *notificationUsecase) ListForViewer(ctx context.Context) (*domain.NotificationList, error) {
	viewer := viewerFromContext(ctx)

	q := domain.NotificationQuery{RecipientType: domain.RecipientGeneral}
	if !viewer.IsAnonymous() {
		q = domain.NotificationQuery{RecipientType: domain.RecipientUser, RecipientID: viewer.ID}
	}
	return u.list(ctx, q)
}

// Filter lets TVET administrators query any feed; everyone else may only query their own.
func (u *notificationUsecase) Filter(ctx context.Context, q domain.NotificationQuery) (*domain.NotificationList, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !q.RecipientType.Valid() {
		return nil, apperror.BadRequest("recipient_type must be one of: user, general")
	}
	q.RecipientID = strings.TrimSpace(q.RecipientID)
	if q.RecipientType == domain.RecipientGeneral {
		q.RecipientID = ""
	}
	if q.RecipientType == domain.RecipientUser && q.RecipientID == "" {
		return nil, apperror.BadRequest("recipient_id is required for user notifications")
	}

	if viewer.Role != domain.RoleTVET {
		if q.RecipientType != domain.RecipientUser || q.RecipientID != viewer.ID {
			return nil, apperror.Forbidden("You can only view your own notifications")
		}
	}
	return u.list(ctx, q)
}

func (u *notificationUsecase) list(ctx context.Context, q domain.NotificationQuery) (*domain.NotificationList, error) {
	items, unread, err := u.notificationRepo.List(ctx, q)
	if err != nil {
		return nil, internalError("fetch notifications", err)
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return &domain.NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := u.load(ctx, viewer, id); err != nil {
		return nil, err
	}

	n, err := u.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Notification not found")
		}
		return nil, internalError("mark notification as read", err)
	}
	return n, nil
}

func (u *notificationUsecase) Remove(ctx context.Context, id string) error {
	viewer, err := requireUser(ctx)
	if err != nil {
		return err
	}
	n, err := u.load(ctx, viewer, id)
	if err != nil {
		return err
	}
	if n.RecipientType == domain.RecipientGeneral && viewer.Role != domain.RoleTVET {
		return apperror.Forbidden("Only TVET administrators can delete general notifications")
	}

	if err := u.notificationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return internalError("delete notification", err)
	}
	return nil
}

// load fetches a notification the viewer may act on. Someone else's notification reads as missing.
func (u *notificationUsecase) load(ctx context.Context, viewer domain.Viewer, id string) (*domain.Notification, error) {
	n, err := u.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Notification not found")
		}
		return nil, internalError("fetch notification", err)
	}
	if n.RecipientType == domain.RecipientUser && !n.AddressedTo(viewer.ID) && viewer.Role != domain.RoleTVET {
		return nil, apperror.NotFound("Notification not found")
	}
	return n, nil
}
