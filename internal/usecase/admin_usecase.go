package usecase

import (
	"context"
	"errors"
	"strings"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/logger"

	"go.uber.org/zap"
)

type adminUsecase struct {
	adminRepo        domain.AdminRepository
	userRepo         domain.UserRepository
	connectionRepo   domain.ConnectionRepository
	notificationRepo domain.NotificationRepository
	notifier         domain.NotificationUsecase
	log              *zap.Logger
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	connectionRepo domain.ConnectionRepository,
	notificationRepo domain.NotificationRepository,
	notifier domain.NotificationUsecase,
) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:        adminRepo,
		userRepo:         userRepo,
		connectionRepo:   connectionRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		log:              logger.Log.Named("admin"),
	}
}

// GetStatistics returns dashboard statistics
func (u *adminUsecase) GetStatistics(ctx context.Context) (*domain.AdminStats, error) {
	if _, err := requireTVET(ctx); err != nil {
		return nil, err
	}

	byRole, err := u.adminRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, internalError("fetch statistics", err)
	}
	pending, err := u.adminRepo.CountPendingApprovals(ctx)
	if err != nil {
		return nil, internalError("fetch statistics", err)
	}
	byStatus, err := u.connectionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, internalError("fetch statistics", err)
	}
	notifications, err := u.notificationRepo.Count(ctx)
	if err != nil {
		return nil, internalError("fetch statistics", err)
	}

	stats := &domain.AdminStats{
		UsersByRole: domain.UsersByRole{
			Individual:    byRole[domain.RoleIndividual],
			PrivateSector: byRole[domain.RolePrivateSector],
			TVET:          byRole[domain.RoleTVET],
		},
		PendingApprovals: pending,
		ConnectionsByStatus: domain.ConnectionsByStatus{
			Pending:  byStatus[domain.ConnectionStatusPending],
			Accepted: byStatus[domain.ConnectionStatusAccepted],
			Rejected: byStatus[domain.ConnectionStatusRejected],
		},
		TotalNotifications: notifications,
	}
	stats.TotalUsers = stats.UsersByRole.Individual + stats.UsersByRole.PrivateSector + stats.UsersByRole.TVET
	return stats, nil
}

// ListPendingApprovals returns private sector accounts awaiting approval
func (u *adminUsecase) ListPendingApprovals(ctx context.Context, page, limit int) (*domain.Page[domain.AdminUser], error) {
	if _, err := requireTVET(ctx); err != nil {
		return nil, err
	}
	approved := false
	return u.listUsers(ctx, domain.UserSearchFilter{
		Role:     domain.RolePrivateSector,
		Approved: &approved,
		Page:     page,
		Limit:    limit,
	})
}

// ListUsers returns paginated non-TVET users, optionally by approval status and role
func (u *adminUsecase) ListUsers(ctx context.Context, status string, role string, page, limit int) (*domain.Page[domain.AdminUser], error) {
	if _, err := requireTVET(ctx); err != nil {
		return nil, err
	}

	filter := domain.UserSearchFilter{
		ExcludeRoles: []domain.Role{domain.RoleTVET},
		Page:         page,
		Limit:        limit,
	}

	switch strings.TrimSpace(status) {
	case "":
	case domain.UserStatusRegistered:
		approved := true
		filter.Approved = &approved
	case domain.UserStatusPending:
		approved := false
		filter.Approved = &approved
	default:
		return nil, apperror.BadRequest("status must be one of: registered, pending")
	}

	if role = strings.TrimSpace(role); role != "" {
		r, err := domain.ParseRole(role)
		if err != nil || r == domain.RoleTVET {
			return nil, apperror.BadRequest("role must be one of: individual, private_sector")
		}
		filter.Role = r
	}

	return u.listUsers(ctx, filter)
}

// ApproveUser approves a private sector account exactly once and tells the user about it.
func (u *adminUsecase) ApproveUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	admin, err := requireTVET(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.BadRequest("User ID is required")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, internalError("fetch user", err)
	}
	if user.Role != domain.RolePrivateSector {
		return nil, apperror.BadRequest("Only private sector accounts require approval")
	}
	if user.IsApproved {
		return nil, apperror.Conflict("User is already approved")
	}

	approved, err := u.adminRepo.Approve(ctx, user.ID, admin.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Conflict("User is already approved")
		}
		return nil, internalError("approve user", err)
	}

	recipient := approved.ID
	if _, err := u.notifier.Dispatch(context.WithoutCancel(ctx), domain.DispatchRequest{
		Title:         "Account approved",
		Message:       "Your account has been approved. You can now sign in to TVET Connect.",
		RecipientType: domain.RecipientUser,
		RecipientID:   &recipient,
		Data:          map[string]interface{}{"event": "account_approved"},
	}); err != nil {
		u.log.Warn("approval notification failed", zap.String("user_id", approved.ID), zap.Error(err))
	}

	result := domain.NewAdminUser(approved)
	return &result, nil
}

func (u *adminUsecase) listUsers(ctx context.Context, filter domain.UserSearchFilter) (*domain.Page[domain.AdminUser], error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	users, total, err := u.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, internalError("fetch users", err)
	}

	items := make([]domain.AdminUser, 0, len(users))
	for i := range users {
		items = append(items, domain.NewAdminUser(&users[i]))
	}
	return domain.NewPage(items, filter.Page, filter.Limit, total), nil
}
