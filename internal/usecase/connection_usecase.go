package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/logger"
	"tvet-connect-backend/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification events carried in the payload of connection notifications.
const (
	eventConnectionRequested   = "connection_requested"
	eventConnectionRequestSent = "connection_request_sent"
	eventConnectionAccepted    = "connection_accepted"
	eventConnectionRejected    = "connection_rejected"
)

type connectionUsecase struct {
	userRepo       domain.UserRepository
	connectionRepo domain.ConnectionRepository
	notifier       domain.NotificationUsecase
	metrics        *metrics.Metrics
	log            *zap.Logger
	now            func() time.Time
}

func NewConnectionUsecase(
	userRepo domain.UserRepository,
	connectionRepo domain.ConnectionRepository,
	notifier domain.NotificationUsecase,
	m *metrics.Metrics,
) domain.ConnectionUsecase {
	return &connectionUsecase{
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
		notifier:       notifier,
		metrics:        m,
		log:            logger.Log.Named("connections"),
		now:            time.Now,
	}
}

// RequestConnection creates a pending connection from the caller to targetID.
func (u *connectionUsecase) RequestConnection(ctx context.Context, requesterID, targetID string) (*domain.Connection, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if requesterID == "" {
		requesterID = viewer.ID
	}
	if requesterID != viewer.ID {
		return nil, apperror.Forbidden("You can only send connection requests as yourself")
	}

	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, apperror.BadRequest("Target user ID is required")
	}
	if targetID == requesterID {
		return nil, apperror.BadRequest("You cannot connect with yourself")
	}

	requester, err := u.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	target, err := u.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	existing, err := u.connectionRepo.GetBetween(ctx, requester.ID, target.ID)
	if err == nil {
		return nil, conflictFor(existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, internalError("check existing connection", err)
	}

	now := u.now().UTC()
	conn := &domain.Connection{
		ID:          uuid.NewString(),
		RequesterID: requester.ID,
		TargetID:    target.ID,
		Status:      domain.ConnectionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.connectionRepo.Create(ctx, conn); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			// lost a race with a concurrent request for the same pair
			if existing, getErr := u.connectionRepo.GetBetween(ctx, requester.ID, target.ID); getErr == nil {
				return nil, conflictFor(existing)
			}
			return nil, apperror.Conflict("A connection already exists between these users")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("User not found")
		}
		return nil, internalError("create connection", err)
	}
	u.metrics.ConnectionTransition("requested")

	u.notify(ctx, target.ID, conn, requester.ID, eventConnectionRequested,
		"New connection request",
		fmt.Sprintf("%s sent you a connection request", requester.DisplayName()))
	u.notify(ctx, requester.ID, conn, target.ID, eventConnectionRequestSent,
		"Connection request sent",
		fmt.Sprintf("Your connection request to %s has been sent", target.DisplayName()))

	return conn, nil
}

// RespondToConnection lets the target accept or reject a pending request, once.
func (u *connectionUsecase) RespondToConnection(ctx context.Context, connectionID string, decision domain.ConnectionDecision) (*domain.Connection, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	status, ok := decision.Status()
	if !ok {
		return nil, apperror.BadRequest("Decision must be one of: accept, reject")
	}

	conn, err := u.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Connection request not found")
		}
		return nil, internalError("fetch connection", err)
	}
	if conn.TargetID != viewer.ID {
		return nil, apperror.Forbidden("Only the recipient can respond to this connection request")
	}
	if conn.Status != domain.ConnectionStatusPending {
		return nil, apperror.NotFound("No pending connection request with this id")
	}

	updated, err := u.connectionRepo.Respond(ctx, conn.ID, viewer.ID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("No pending connection request with this id")
		}
		return nil, internalError("update connection", err)
	}
	u.metrics.ConnectionTransition(string(status))

	name := u.displayName(ctx, viewer.ID)
	if status == domain.ConnectionStatusAccepted {
		u.notify(ctx, updated.RequesterID, updated, viewer.ID, eventConnectionAccepted,
			"Connection request accepted",
			fmt.Sprintf("%s accepted your connection request", name))
	} else {
		u.notify(ctx, updated.RequesterID, updated, viewer.ID, eventConnectionRejected,
			"Connection request declined",
			fmt.Sprintf("%s declined your connection request", name))
	}

	return updated, nil
}

// RemoveConnection deletes the caller's connection with otherUserID whatever its status.
// The pair always contains the caller, so there is no row the caller is not a party to.
func (u *connectionUsecase) RemoveConnection(ctx context.Context, otherUserID string) error {
	viewer, err := requireUser(ctx)
	if err != nil {
		return err
	}
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" {
		return apperror.BadRequest("User ID is required")
	}
	if otherUserID == viewer.ID {
		return apperror.BadRequest("You cannot remove a connection with yourself")
	}

	if _, err := u.connectionRepo.DeleteBetween(ctx, viewer.ID, otherUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Connection not found")
		}
		return internalError("remove connection", err)
	}
	u.metrics.ConnectionTransition("removed")
	return nil
}

// ListConnections pages through the caller's connections with counterparts projected for the caller.
func (u *connectionUsecase) ListConnections(ctx context.Context, filter domain.ConnectionFilter) (*domain.Page[domain.ConnectionView], error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if filter.UserID != "" && filter.UserID != viewer.ID {
		return nil, apperror.Forbidden("You can only list your own connections")
	}
	filter.UserID = viewer.ID

	if filter.Direction == "" {
		filter.Direction = domain.DirectionAll
	}
	if !filter.Direction.Valid() {
		return nil, apperror.BadRequest("direction must be one of: outgoing, incoming, all")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.BadRequest("status must be one of: pending, accepted, rejected")
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	conns, total, err := u.connectionRepo.List(ctx, filter)
	if err != nil {
		return nil, internalError("fetch connections", err)
	}

	ids := make([]string, 0, len(conns))
	for i := range conns {
		ids = append(ids, conns[i].Counterpart(viewer.ID))
	}
	users := map[string]*domain.User{}
	if len(ids) > 0 {
		found, err := u.userRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, internalError("fetch connection users", err)
		}
		for i := range found {
			users[found[i].ID] = &found[i]
		}
	}

	views := make([]domain.ConnectionView, 0, len(conns))
	for _, c := range conns {
		counterpart, ok := users[c.Counterpart(viewer.ID)]
		if !ok {
			continue
		}
		direction := domain.DirectionIncoming
		if c.RequesterID == viewer.ID {
			direction = domain.DirectionOutgoing
		}
		views = append(views, domain.ConnectionView{
			Connection:  c,
			Direction:   direction,
			Counterpart: domain.ProjectProfile(viewer, counterpart, c.Status == domain.ConnectionStatusAccepted),
		})
	}

	return domain.NewPage(views, filter.Page, filter.Limit, total), nil
}

func (u *connectionUsecase) GetRelationship(ctx context.Context, otherUserID string) (*domain.RelationshipView, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if otherUserID == viewer.ID {
		return nil, apperror.BadRequest("You cannot check a connection with yourself")
	}
	if _, err := u.getUser(ctx, otherUserID); err != nil {
		return nil, err
	}

	conn, err := u.connectionRepo.GetBetween(ctx, viewer.ID, otherUserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, internalError("fetch connection", err)
	}
	if err != nil {
		conn = nil
	}
	view := domain.RelationshipFrom(viewer.ID, conn)
	return &view, nil
}

func (u *connectionUsecase) IsConnected(ctx context.Context, a, b string) (bool, error) {
	if a == "" || b == "" || a == b {
		return false, nil
	}
	conn, err := u.connectionRepo.GetBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return conn.Status == domain.ConnectionStatusAccepted, nil
}

func (u *connectionUsecase) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, internalError("fetch user", err)
	}
	return user, nil
}

func (u *connectionUsecase) displayName(ctx context.Context, id string) string {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return "A user"
	}
	return user.DisplayName()
}

// notify dispatches a best-effort notification. The connection change is already durable,
// so failures are logged and dropped.
func (u *connectionUsecase) notify(ctx context.Context, recipientID string, conn *domain.Connection, counterpartID, event, title, message string) {
	recipient := recipientID
	_, err := u.notifier.Dispatch(context.WithoutCancel(ctx), domain.DispatchRequest{
		Title:         title,
		Message:       message,
		RecipientType: domain.RecipientUser,
		RecipientID:   &recipient,
		Data: map[string]interface{}{
			"connection_id":  conn.ID,
			"counterpart_id": counterpartID,
			"event":          event,
		},
	})
	if err != nil {
		u.log.Warn("connection notification failed",
			zap.String("connection_id", conn.ID),
			zap.String("recipient_id", recipientID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

func conflictFor(existing *domain.Connection) error {
	return apperror.Conflict("A connection already exists between these users").WithDetails(map[string]interface{}{
		"status":        existing.Status,
		"connection_id": existing.ID,
	})
}
