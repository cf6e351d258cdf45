package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account kinds.
type Role string

const (
	RoleIndividual    Role = "individual"
	RolePrivateSector Role = "private_sector"
	RoleTVET          Role = "tvet"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(strings.ToLower(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RolePrivateSector, RoleTVET:
		return true
	}
	return false
}

// ApprovedOnCreate reports the approval flag a new account of this role starts with.
// Only private_sector accounts wait for a TVET administrator.
func (r Role) ApprovedOnCreate() bool {
	switch r {
	case RoleIndividual, RoleTVET:
		return true
	case RolePrivateSector:
		return false
	}
	return false
}

type User struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Bio             string     `json:"bio"`
	Role            Role       `json:"role"`
	CompanyName     string     `json:"company_name"`
	CompanySize     string     `json:"company_size"`
	Industry        string     `json:"industry"`
	TVETInstitution string     `json:"tvet_institution"`
	Position        string     `json:"position"`
	Skills          []string   `json:"skills"`
	Sectors         []string   `json:"sectors"`
	PasswordHash    string     `json:"-"`
	IsApproved      bool       `json:"is_approved"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DisplayName is how the user is named to other parties, e.g. in notifications.
// It never uses company_name, which is hidden from unconnected viewers.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch u.Role {
	case RoleTVET:
		if name == "" && u.TVETInstitution != "" {
			return u.TVETInstitution
		}
	case RoleIndividual, RolePrivateSector:
	}
	if name == "" {
		return "A user"
	}
	return name
}

// CanSignIn is false only for private_sector accounts awaiting approval.
func (u *User) CanSignIn() bool {
	return u.Role != RolePrivateSector || u.IsApproved
}

// UserSearchFilter drives the public directory and the admin listings.
type UserSearchFilter struct {
	Role         Role
	Search       string
	Approved     *bool
	ExcludeRoles []Role
	Page         int
	Limit        int
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateProfile(ctx context.Context, user *User) error
	Search(ctx context.Context, filter UserSearchFilter) ([]User, int64, error)
}

type SignupIndividualRequest struct {
	FirstName string   `json:"first_name" validate:"required,max=100,valid_name"`
	LastName  string   `json:"last_name" validate:"required,max=100,valid_name"`
	Email     string   `json:"email" validate:"required,email,max=254"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	Phone     string   `json:"phone" validate:"omitempty,valid_phone"`
	Bio       string   `json:"bio" validate:"max=1000,no_emoji"`
	Skills    []string `json:"skills" validate:"tag_list"`
	Sectors   []string `json:"sectors" validate:"tag_list"`
}

type SignupPrivateSectorRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100,valid_name"`
	LastName    string `json:"last_name" validate:"required,max=100,valid_name"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Phone       string `json:"phone" validate:"omitempty,valid_phone"`
	Bio         string `json:"bio" validate:"max=1000,no_emoji"`
	CompanyName string `json:"company_name" validate:"required,max=200,valid_name"`
	CompanySize string `json:"company_size" validate:"max=50"`
	Industry    string `json:"industry" validate:"max=100"`
}

// CreateTVETRequest is used by the operator CLI; TVET accounts have no public signup.
type CreateTVETRequest struct {
	FirstName       string `validate:"required,max=100,valid_name"`
	LastName        string `validate:"required,max=100,valid_name"`
	Email           string `validate:"required,email,max=254"`
	Password        string `validate:"required,min=8,max=72"`
	TVETInstitution string `validate:"required,max=200"`
	Position        string `validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginMeta carries request facts used for brute-force tracking.
type LoginMeta struct {
	IP        string
	RequestID string
}

type AuthResult struct {
	User      *UserProfile `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// UpdateProfileRequest lists the self-editable fields; nil means unchanged.
type UpdateProfileRequest struct {
	FirstName   *string   `json:"first_name" validate:"omitempty,min=1,max=100,valid_name"`
	LastName    *string   `json:"last_name" validate:"omitempty,min=1,max=100,valid_name"`
	Phone       *string   `json:"phone" validate:"omitempty,valid_phone"`
	Bio         *string   `json:"bio" validate:"omitempty,max=1000,no_emoji"`
	Skills      *[]string `json:"skills" validate:"omitempty,tag_list"`
	Sectors     *[]string `json:"sectors" validate:"omitempty,tag_list"`
	CompanySize *string   `json:"company_size" validate:"omitempty,max=50"`
	Industry    *string   `json:"industry" validate:"omitempty,max=100"`
	Position    *string   `json:"position" validate:"omitempty,max=100"`
}

type AuthUsecase interface {
	SignupIndividual(ctx context.Context, req SignupIndividualRequest) (*AuthResult, error)
	SignupPrivateSector(ctx context.Context, req SignupPrivateSectorRequest) (*AuthResult, error)
	CreateTVET(ctx context.Context, req CreateTVETRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest, meta LoginMeta) (*AuthResult, error)
	// Authenticate resolves a bearer token to a fresh user record.
	Authenticate(ctx context.Context, token string) (*User, error)
}

type UserUsecase interface {
	Me(ctx context.Context) (*UserProfile, error)
	GetProfile(ctx context.Context, id string) (*UserProfile, error)
	Search(ctx context.Context, filter UserSearchFilter) (*Page[UserProfile], error)
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (*UserProfile, error)
}
