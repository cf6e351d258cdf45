package domain_test

import (
	"testing"

	"tvet-connect-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	t.Run("Should only auto approve individual and tvet accounts", func(t *testing.T) {
		assert.True(t, domain.RoleIndividual.ApprovedOnCreate())
		assert.True(t, domain.RoleTVET.ApprovedOnCreate())
		assert.False(t, domain.RolePrivateSector.ApprovedOnCreate())
	})

	t.Run("Should parse known roles and reject others", func(t *testing.T) {
		r, err := domain.ParseRole(" Private_Sector ")
		assert.NoError(t, err)
		assert.Equal(t, domain.RolePrivateSector, r)

		_, err = domain.ParseRole("admin")
		assert.Error(t, err)
	})

	t.Run("Should block sign in only for unapproved private sector accounts", func(t *testing.T) {
		assert.False(t, (&domain.User{Role: domain.RolePrivateSector}).CanSignIn())
		assert.True(t, (&domain.User{Role: domain.RolePrivateSector, IsApproved: true}).CanSignIn())
		assert.True(t, (&domain.User{Role: domain.RoleIndividual}).CanSignIn())
	})

	t.Run("Should never name a company user by company name", func(t *testing.T) {
		u := &domain.User{Role: domain.RolePrivateSector, FirstName: "Grace", CompanyName: "Acme"}
		assert.Equal(t, "Grace", u.DisplayName())
		u = &domain.User{Role: domain.RoleIndividual, FirstName: "Grace", LastName: "W"}
		assert.Equal(t, "Grace W", u.DisplayName())
	})
}

func TestRelationshipFrom(t *testing.T) {
	conn := &domain.Connection{ID: "c1", RequesterID: "a", TargetID: "b", Status: domain.ConnectionStatusPending}

	assert.Equal(t, domain.RelationshipPending, domain.RelationshipFrom("a", conn).Status)
	assert.Equal(t, domain.RelationshipReceived, domain.RelationshipFrom("b", conn).Status)
	assert.Equal(t, "c1", domain.RelationshipFrom("b", conn).ConnectionID)

	conn.Status = domain.ConnectionStatusAccepted
	assert.Equal(t, domain.RelationshipConnected, domain.RelationshipFrom("a", conn).Status)

	conn.Status = domain.ConnectionStatusRejected
	assert.Equal(t, domain.RelationshipRejected, domain.RelationshipFrom("b", conn).Status)

	assert.Equal(t, domain.RelationshipNotConnected, domain.RelationshipFrom("a", nil).Status)
}

func TestConnectionHelpers(t *testing.T) {
	conn := &domain.Connection{RequesterID: "a", TargetID: "b"}
	assert.True(t, conn.Involves("a"))
	assert.False(t, conn.Involves("c"))
	assert.Equal(t, "b", conn.Counterpart("a"))
	assert.Equal(t, "a", conn.Counterpart("b"))

	status, ok := domain.DecisionAccept.Status()
	assert.True(t, ok)
	assert.Equal(t, domain.ConnectionStatusAccepted, status)
	_, ok = domain.ConnectionDecision("maybe").Status()
	assert.False(t, ok)
}

func TestPagination(t *testing.T) {
	page, limit := domain.NormalizePage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, domain.DefaultPageSize, limit)

	p := domain.NewPage([]string{"a", "b"}, 2, 2, 5)
	assert.Equal(t, 3, p.Pagination.TotalPages)
	assert.Equal(t, int64(5), p.Pagination.TotalItems)
	assert.Equal(t, 2, p.Pagination.ItemsPerPage)
	assert.Equal(t, 2, p.Pagination.CurrentPage)
	assert.Equal(t, 2, domain.Offset(2, 2))

	empty := domain.NewPage[string](nil, 1, 10, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}
