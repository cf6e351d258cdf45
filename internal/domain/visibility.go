package domain

import "time"

// Viewer is whoever is reading a User-shaped payload. A zero ID is an anonymous visitor.
type Viewer struct {
	ID   string
	Role Role
}

func (v Viewer) IsAnonymous() bool {
	return v.ID == ""
}

// UserProfile is the only shape in which a user leaves the service to another party.
// Redacted fields are dropped from the JSON entirely.
type UserProfile struct {
	ID              string    `json:"id"`
	Role            Role      `json:"role"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           *string   `json:"email,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Bio             string    `json:"bio"`
	Skills          []string  `json:"skills"`
	Sectors         []string  `json:"sectors"`
	CompanyName     *string   `json:"company_name,omitempty"`
	CompanySize     string    `json:"company_size,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	TVETInstitution string    `json:"tvet_institution,omitempty"`
	Position        string    `json:"position,omitempty"`
	IsApproved      bool      `json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
	// ContactHidden tells clients that contact details exist but were withheld.
	ContactHidden bool `json:"contact_hidden"`
}

// Visibility is the derived (viewer, subject) context the policy decides on.
type Visibility struct {
	IsOwner   bool
	Connected bool
}

// VisibilityFor derives the context; connected must come from an accepted connection.
func VisibilityFor(viewer Viewer, subject *User, connected bool) Visibility {
	isOwner := !viewer.IsAnonymous() && viewer.ID == subject.ID
	return Visibility{IsOwner: isOwner, Connected: connected && !isOwner}
}

// ShowContact decides email and phone.
func (v Visibility) ShowContact(subjectRole Role) bool {
	switch subjectRole {
	case RoleIndividual, RolePrivateSector, RoleTVET:
		return v.IsOwner || v.Connected
	}
	return v.IsOwner
}

// ShowCompanyIdentity decides company_name; only private_sector accounts hide it.
func (v Visibility) ShowCompanyIdentity(subjectRole Role) bool {
	switch subjectRole {
	case RolePrivateSector:
		return v.IsOwner || v.Connected
	case RoleIndividual, RoleTVET:
		return true
	}
	return v.IsOwner
}

// ProjectProfile applies the visibility rules to subject for viewer.
// The password hash has no field here, so it can never be projected.
func ProjectProfile(viewer Viewer, subject *User, connected bool) UserProfile {
	vis := VisibilityFor(viewer, subject, connected)

	p := UserProfile{
		ID:              subject.ID,
		Role:            subject.Role,
		FirstName:       subject.FirstName,
		LastName:        subject.LastName,
		Bio:             subject.Bio,
		Skills:          nonNil(subject.Skills),
		Sectors:         nonNil(subject.Sectors),
		CompanySize:     subject.CompanySize,
		Industry:        subject.Industry,
		TVETInstitution: subject.TVETInstitution,
		Position:        subject.Position,
		IsApproved:      subject.IsApproved,
		CreatedAt:       subject.CreatedAt,
	}

	if vis.ShowContact(subject.Role) {
		p.Email = strPtr(subject.Email)
		p.Phone = strPtr(subject.Phone)
	} else {
		p.ContactHidden = true
	}

	if subject.CompanyName != "" && vis.ShowCompanyIdentity(subject.Role) {
		p.CompanyName = strPtr(subject.CompanyName)
	}

	return p
}

// OwnerProfile is the caller's own view of themselves.
func OwnerProfile(u *User) UserProfile {
	return ProjectProfile(Viewer{ID: u.ID, Role: u.Role}, u, false)
}

func strPtr(s string) *string {
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
