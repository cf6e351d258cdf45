package domain

import (
	"context"
	"time"
)

// AdminUser is the administrative projection: every field except credentials.
type AdminUser struct {
	ID              string     `json:"id"`
	Role            Role       `json:"role"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	CompanyName     string     `json:"company_name,omitempty"`
	CompanySize     string     `json:"company_size,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	TVETInstitution string     `json:"tvet_institution,omitempty"`
	Position        string     `json:"position,omitempty"`
	IsApproved      bool       `json:"is_approved"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewAdminUser(u *User) AdminUser {
	return AdminUser{
		ID:              u.ID,
		Role:            u.Role,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		CompanyName:     u.CompanyName,
		CompanySize:     u.CompanySize,
		Industry:        u.Industry,
		TVETInstitution: u.TVETInstitution,
		Position:        u.Position,
		IsApproved:      u.IsApproved,
		ApprovedBy:      u.ApprovedBy,
		ApprovedAt:      u.ApprovedAt,
		CreatedAt:       u.CreatedAt,
	}
}

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers          int64               `json:"totalUsers"`
	UsersByRole         UsersByRole         `json:"usersByRole"`
	PendingApprovals    int64               `json:"pendingApprovals"`
	ConnectionsByStatus ConnectionsByStatus `json:"connectionsByStatus"`
	TotalNotifications  int64               `json:"totalNotifications"`
}

type UsersByRole struct {
	Individual    int64 `json:"individual"`
	PrivateSector int64 `json:"private_sector"`
	TVET          int64 `json:"tvet"`
}

type ConnectionsByStatus struct {
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// UserStatusFilter values for the admin user listing.
const (
	UserStatusRegistered = "registered"
	UserStatusPending    = "pending"
)

type AdminRepository interface {
	CountUsersByRole(ctx context.Context) (map[Role]int64, error)
	CountPendingApprovals(ctx context.Context) (int64, error)
	// Approve flips is_approved for an unapproved private_sector user; ErrNotFound if nothing changed.
	Approve(ctx context.Context, userID, approverID string) (*User, error)
}

type AdminUsecase interface {
	GetStatistics(ctx context.Context) (*AdminStats, error)
	ListPendingApprovals(ctx context.Context, page, limit int) (*Page[AdminUser], error)
	ListUsers(ctx context.Context, status string, role string, page, limit int) (*Page[AdminUser], error)
	ApproveUser(ctx context.Context, userID string) (*AdminUser, error)
}
