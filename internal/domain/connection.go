package domain

import (
	"context"
	"time"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusRejected:
		return true
	}
	return false
}

// Connection is stored as (user_id, connected_user_id); the requester is always user_id.
type Connection struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requester_id"`
	TargetID    string           `json:"target_id"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Involves reports whether userID is one of the two parties.
func (c *Connection) Involves(userID string) bool {
	return c.RequesterID == userID || c.TargetID == userID
}

// Counterpart returns the other party from userID's point of view.
func (c *Connection) Counterpart(userID string) string {
	if c.RequesterID == userID {
		return c.TargetID
	}
	return c.RequesterID
}

type ConnectionDecision string

const (
	DecisionAccept ConnectionDecision = "accept"
	DecisionReject ConnectionDecision = "reject"
)

// Status maps a decision to the status it produces.
func (d ConnectionDecision) Status() (ConnectionStatus, bool) {
	switch d {
	case DecisionAccept:
		return ConnectionStatusAccepted, true
	case DecisionReject:
		return ConnectionStatusRejected, true
	}
	return "", false
}

type ConnectionDirection string

const (
	DirectionOutgoing ConnectionDirection = "outgoing"
	DirectionIncoming ConnectionDirection = "incoming"
	DirectionAll      ConnectionDirection = "all"
)

func (d ConnectionDirection) Valid() bool {
	switch d {
	case DirectionOutgoing, DirectionIncoming, DirectionAll:
		return true
	}
	return false
}

type ConnectionFilter struct {
	UserID    string
	Status    ConnectionStatus // empty means any status
	Direction ConnectionDirection
	Page      int
	Limit     int
}

// ConnectionView is a listing row: the connection plus the counterpart as the caller may see them.
type ConnectionView struct {
	Connection
	Direction   ConnectionDirection `json:"direction"`
	Counterpart UserProfile         `json:"counterpart"`
}

// RelationshipStatus is the caller's relationship to another user.
type RelationshipStatus string

const (
	RelationshipConnected    RelationshipStatus = "connected"
	RelationshipPending      RelationshipStatus = "pending"  // caller asked, awaiting answer
	RelationshipReceived     RelationshipStatus = "received" // other user asked the caller
	RelationshipRejected     RelationshipStatus = "rejected"
	RelationshipNotConnected RelationshipStatus = "not_connected"
)

type RelationshipView struct {
	Status       RelationshipStatus `json:"status"`
	ConnectionID string             `json:"connection_id,omitempty"`
}

// RelationshipFrom computes the status of c as seen by viewerID; c may be nil.
func RelationshipFrom(viewerID string, c *Connection) RelationshipView {
	if c == nil {
		return RelationshipView{Status: RelationshipNotConnected}
	}
	view := RelationshipView{ConnectionID: c.ID}
	switch c.Status {
	case ConnectionStatusAccepted:
		view.Status = RelationshipConnected
	case ConnectionStatusRejected:
		view.Status = RelationshipRejected
	case ConnectionStatusPending:
		if c.RequesterID == viewerID {
			view.Status = RelationshipPending
		} else {
			view.Status = RelationshipReceived
		}
	default:
		view.Status = RelationshipNotConnected
	}
	return view
}

type ConnectionRepository interface {
	// Create fails with ErrDuplicate when any row exists for the unordered pair.
	Create(ctx context.Context, c *Connection) error
	GetByID(ctx context.Context, id string) (*Connection, error)
	// GetBetween finds the row for the unordered pair (a, b).
	GetBetween(ctx context.Context, a, b string) (*Connection, error)
	// Respond moves a pending row addressed to targetID to status; ErrNotFound if none matched.
	Respond(ctx context.Context, id, targetID string, status ConnectionStatus) (*Connection, error)
	// DeleteBetween removes the row for the unordered pair; ErrNotFound if none.
	DeleteBetween(ctx context.Context, a, b string) (*Connection, error)
	List(ctx context.Context, filter ConnectionFilter) ([]Connection, int64, error)
	CountByStatus(ctx context.Context) (map[ConnectionStatus]int64, error)
}

type ConnectionUsecase interface {
	RequestConnection(ctx context.Context, requesterID, targetID string) (*Connection, error)
	RespondToConnection(ctx context.Context, connectionID string, decision ConnectionDecision) (*Connection, error)
	RemoveConnection(ctx context.Context, otherUserID string) error
	ListConnections(ctx context.Context, filter ConnectionFilter) (*Page[ConnectionView], error)
	GetRelationship(ctx context.Context, otherUserID string) (*RelationshipView, error)
	// IsConnected reports whether an accepted connection exists between a and b.
	IsConnected(ctx context.Context, a, b string) (bool, error)
}
