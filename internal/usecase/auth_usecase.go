package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/auth"
	"tvet-connect-backend/pkg/logger"
	"tvet-connect-backend/pkg/metrics"
	"tvet-connect-backend/pkg/security"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgPendingApproval    = "Your account is pending approval by a TVET administrator"
	msgLoginBlocked       = "Too many failed login attempts. Please try again later."
	msgEmailTaken         = "An account with this email already exists"
)

type authUsecase struct {
	userRepo     domain.UserRepository
	hasher       *auth.PasswordHasher
	tokens       *auth.TokenManager
	loginTracker *security.LoginTracker
	secLog       *security.Logger
	metrics      *metrics.Metrics
	log          *zap.Logger
	now          func() time.Time
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	loginTracker *security.LoginTracker,
	secLog *security.Logger,
	m *metrics.Metrics,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		hasher:       hasher,
		tokens:       tokens,
		loginTracker: loginTracker,
		secLog:       secLog,
		metrics:      m,
		log:          logger.Log.Named("auth"),
		now:          time.Now,
	}
}

func (u *authUsecase) SignupIndividual(ctx context.Context, req domain.SignupIndividualRequest) (*domain.AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := u.newUser(domain.RoleIndividual, req.FirstName, req.LastName, req.Email)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Bio = strings.TrimSpace(req.Bio)
	user.Skills = cleanTags(req.Skills)
	user.Sectors = cleanTags(req.Sectors)

	if err := u.create(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return u.issue(user)
}

// SignupPrivateSector registers a company account. It cannot sign in until approved, so no token is issued.
func (u *authUsecase) SignupPrivateSector(ctx context.Context, req domain.SignupPrivateSectorRequest) (*domain.AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := u.newUser(domain.RolePrivateSector, req.FirstName, req.LastName, req.Email)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Bio = strings.TrimSpace(req.Bio)
	user.CompanyName = strings.TrimSpace(req.CompanyName)
	user.CompanySize = strings.TrimSpace(req.CompanySize)
	user.Industry = strings.TrimSpace(req.Industry)

	if err := u.create(ctx, user, req.Password); err != nil {
		return nil, err
	}
	profile := domain.OwnerProfile(user)
	return &domain.AuthResult{User: &profile}, nil
}

func (u *authUsecase) CreateTVET(ctx context.Context, req domain.CreateTVETRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := u.newUser(domain.RoleTVET, req.FirstName, req.LastName, req.Email)
	user.TVETInstitution = strings.TrimSpace(req.TVETInstitution)
	user.Position = strings.TrimSpace(req.Position)

	if err := u.create(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest, meta domain.LoginMeta) (*domain.AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	blocked, err := u.loginTracker.IsBlocked(ctx, req.Email)
	if err != nil {
		u.log.Warn("login block check failed", zap.Error(err))
	}
	if blocked {
		u.metrics.LoginAttempt("blocked")
		u.secLog.LoginBlocked(ctx, req.Email, meta.IP, meta.RequestID)
		return nil, apperror.TooManyRequests(msgLoginBlocked)
	}

	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.failLogin(ctx, req.Email, meta, "unknown_email")
		}
		return nil, internalError("fetch user", err)
	}

	ok, err := u.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, internalError("verify password", err)
	}
	if !ok {
		return nil, u.failLogin(ctx, req.Email, meta, "wrong_password")
	}

	if !user.CanSignIn() {
		u.metrics.LoginAttempt("pending_approval")
		return nil, apperror.Forbidden(msgPendingApproval)
	}

	if err := u.loginTracker.ClearAttempts(ctx, req.Email); err != nil {
		u.log.Warn("failed to clear login attempts", zap.Error(err))
	}
	u.metrics.LoginAttempt("success")
	u.secLog.Log(ctx, security.Event{
		Type:         security.EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: user.ID,
		IP:           meta.IP,
		RequestID:    meta.RequestID,
	})

	return u.issue(user)
}

// Authenticate resolves a token to the current user record, so role and approval are never stale.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid or expired token")
		}
		return nil, internalError("fetch user", err)
	}
	if !user.CanSignIn() {
		return nil, apperror.Forbidden(msgPendingApproval)
	}
	return user, nil
}

func (u *authUsecase) failLogin(ctx context.Context, email string, meta domain.LoginMeta, reason string) error {
	u.metrics.LoginAttempt("invalid_credentials")
	u.secLog.LoginFailed(ctx, email, meta.IP, meta.RequestID, reason)

	blocked, err := u.loginTracker.RecordFailedAttempt(ctx, email, meta.IP, meta.RequestID)
	if err != nil {
		u.log.Warn("failed to record login attempt", zap.Error(err))
	}
	if blocked {
		return apperror.TooManyRequests(msgLoginBlocked)
	}
	return apperror.Unauthorized(msgInvalidCredentials)
}

func (u *authUsecase) newUser(role domain.Role, firstName, lastName, email string) *domain.User {
	now := u.now().UTC()
	return &domain.User{
		ID:         uuid.NewString(),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      email,
		Role:       role,
		IsApproved: role.ApprovedOnCreate(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (u *authUsecase) create(ctx context.Context, user *domain.User, password string) error {
	if _, err := u.userRepo.GetByEmail(ctx, user.Email); err == nil {
		return apperror.Conflict(msgEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return internalError("check email", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return internalError("hash password", err)
	}
	user.PasswordHash = hash

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict(msgEmailTaken)
		}
		return internalError("create user", err)
	}
	return nil
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, expiresAt, err := u.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, internalError("sign token", err)
	}
	profile := domain.OwnerProfile(user)
	return &domain.AuthResult{User: &profile, Token: token, ExpiresAt: &expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
