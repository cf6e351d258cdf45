package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
)

const maxSearchLength = 100

type userUsecase struct {
	userRepo    domain.UserRepository
	connections domain.ConnectionUsecase
	now         func() time.Time
}

func NewUserUsecase(userRepo domain.UserRepository, connections domain.ConnectionUsecase) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, connections: connections, now: time.Now}
}

func (u *userUsecase) Me(ctx context.Context) (*domain.UserProfile, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := u.getUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	profile := domain.OwnerProfile(user)
	return &profile, nil
}

// GetProfile returns id as the caller may see it. Unapproved companies are only visible to
// themselves and TVET administrators.
func (u *userUsecase) GetProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	viewer := viewerFromContext(ctx)

	user, err := u.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsApproved && viewer.ID != user.ID && viewer.Role != domain.RoleTVET {
		return nil, apperror.NotFound("User not found")
	}

	connected, err := u.isConnected(ctx, viewer, user.ID)
	if err != nil {
		return nil, err
	}
	profile := domain.ProjectProfile(viewer, user, connected)
	return &profile, nil
}

// Search lists approved users, each projected for the caller.
func (u *userUsecase) Search(ctx context.Context, filter domain.UserSearchFilter) (*domain.Page[domain.UserProfile], error) {
	viewer := viewerFromContext(ctx)

	if filter.Role != "" && !filter.Role.Valid() {
		return nil, apperror.BadRequest("role must be one of: individual, private_sector, tvet")
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if len(filter.Search) > maxSearchLength {
		return nil, apperror.BadRequest("search must be at most 100 characters")
	}
	approved := true
	filter.Approved = &approved
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	users, total, err := u.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, internalError("search users", err)
	}

	profiles := make([]domain.UserProfile, 0, len(users))
	for i := range users {
		connected, err := u.isConnected(ctx, viewer, users[i].ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, domain.ProjectProfile(viewer, &users[i], connected))
	}

	return domain.NewPage(profiles, filter.Page, filter.Limit, total), nil
}

func (u *userUsecase) UpdateMe(ctx context.Context, req domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	viewer, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := u.getUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, apperror.BadRequest("First name cannot be empty")
		}
		user.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, apperror.BadRequest("Last name cannot be empty")
		}
		user.LastName = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Skills != nil {
		user.Skills = cleanTags(*req.Skills)
	}
	if req.Sectors != nil {
		user.Sectors = cleanTags(*req.Sectors)
	}
	if req.CompanySize != nil {
		user.CompanySize = strings.TrimSpace(*req.CompanySize)
	}
	if req.Industry != nil {
		user.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Position != nil {
		user.Position = strings.TrimSpace(*req.Position)
	}
	user.UpdatedAt = u.now().UTC()

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, internalError("update profile", err)
	}

	profile := domain.OwnerProfile(user)
	return &profile, nil
}

func (u *userUsecase) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, internalError("fetch user", err)
	}
	return user, nil
}

func (u *userUsecase) isConnected(ctx context.Context, viewer domain.Viewer, subjectID string) (bool, error) {
	if viewer.IsAnonymous() || viewer.ID == subjectID {
		return false, nil
	}
	connected, err := u.connections.IsConnected(ctx, viewer.ID, subjectID)
	if err != nil {
		return false, internalError("check connection", err)
	}
	return connected, nil
}

// cleanTags trims entries and drops blanks and case-insensitive duplicates.
func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
