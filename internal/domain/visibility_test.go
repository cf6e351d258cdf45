package domain_test

import (
	"encoding/json"
	"testing"

	"tvet-connect-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyUser() *domain.User {
	return &domain.User{
		ID:           "company-1",
		Role:         domain.RolePrivateSector,
		FirstName:    "Grace",
		LastName:     "Wanjiru",
		Email:        "grace@acme.example",
		Phone:        "+254700000001",
		CompanyName:  "Acme Fabrication",
		CompanySize:  "11-50",
		Industry:     "Manufacturing",
		PasswordHash: "$2a$10$hash",
		IsApproved:   true,
	}
}

func profileJSON(t *testing.T, p domain.UserProfile) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestProjectProfile(t *testing.T) {
	subject := companyUser()

	t.Run("Should hide contact and company identity from a stranger viewing a private sector account", func(t *testing.T) {
		viewers := []domain.Viewer{
			{},
			{ID: "individual-1", Role: domain.RoleIndividual},
			{ID: "tvet-1", Role: domain.RoleTVET},
		}
		for _, viewer := range viewers {
			out := profileJSON(t, domain.ProjectProfile(viewer, subject, false))
			assert.NotContains(t, out, "email")
			assert.NotContains(t, out, "phone")
			assert.NotContains(t, out, "company_name")
			assert.Equal(t, true, out["contact_hidden"])
			assert.Equal(t, "Manufacturing", out["industry"])
		}
	})

	t.Run("Should show every field to the owner", func(t *testing.T) {
		out := profileJSON(t, domain.OwnerProfile(subject))
		assert.Equal(t, "grace@acme.example", out["email"])
		assert.Equal(t, "+254700000001", out["phone"])
		assert.Equal(t, "Acme Fabrication", out["company_name"])
		assert.Equal(t, false, out["contact_hidden"])
	})

	t.Run("Should show contact details to a connected viewer", func(t *testing.T) {
		viewer := domain.Viewer{ID: "individual-1", Role: domain.RoleIndividual}
		out := profileJSON(t, domain.ProjectProfile(viewer, subject, true))
		assert.Equal(t, "grace@acme.example", out["email"])
		assert.Equal(t, "Acme Fabrication", out["company_name"])
	})

	t.Run("Should never expose the password hash", func(t *testing.T) {
		for _, connected := range []bool{true, false} {
			raw, err := json.Marshal(domain.ProjectProfile(domain.Viewer{ID: subject.ID}, subject, connected))
			require.NoError(t, err)
			assert.NotContains(t, string(raw), "$2a$10$hash")
			assert.NotContains(t, string(raw), "password")
		}
		raw, err := json.Marshal(subject)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "$2a$10$hash")
	})

	t.Run("Should hide contact details of individuals from strangers but keep their name", func(t *testing.T) {
		individual := &domain.User{ID: "ind-2", Role: domain.RoleIndividual, FirstName: "Otieno", Email: "o@example.com"}
		out := profileJSON(t, domain.ProjectProfile(domain.Viewer{}, individual, false))
		assert.NotContains(t, out, "email")
		assert.Equal(t, "Otieno", out["first_name"])
	})

	t.Run("Should not treat an anonymous viewer as owner of an account without id", func(t *testing.T) {
		vis := domain.VisibilityFor(domain.Viewer{}, &domain.User{}, false)
		assert.False(t, vis.IsOwner)
	})
}

func TestAdminUserExcludesCredentials(t *testing.T) {
	raw, err := json.Marshal(domain.NewAdminUser(companyUser()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.Contains(t, string(raw), "grace@acme.example")
}
