package v1

import (
	"net/http"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

// NewAdminHandler expects admin to already carry the auth and TVET role guards.
func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	// Dashboard stats
	admin.GET("/statistics", handler.GetStatistics)

	// Account approval
	admin.GET("/approvals/pending", handler.ListPendingApprovals)
	admin.POST("/users/:id/approve", handler.ApproveUser)

	admin.GET("/users", handler.ListUsers)
}

// GetStatistics godoc
// @Summary      Platform statistics
// @Description  User counts by role, pending approvals, connections by status and notification total
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/statistics [get]
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	stats, err := h.adminUC.GetStatistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListPendingApprovals godoc
// @Summary      Companies awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=domain.Page[domain.AdminUser]}
// @Failure      403    {object}  response.Response
// @Router       /admin/approvals/pending [get]
func (h *AdminHandler) ListPendingApprovals(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.adminUC.ListPendingApprovals(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending approvals retrieved", result)
}

// ListUsers godoc
// @Summary      List non-TVET accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "registered or pending"
// @Param        role    query     string  false  "individual or private_sector"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response{data=domain.Page[domain.AdminUser]}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.adminUC.ListUsers(c.Request.Context(), c.Query("status"), c.Query("role"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", result)
}

// ApproveUser godoc
// @Summary      Approve a private sector account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.AdminUser}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response  "Already approved"
// @Router       /admin/users/{id}/approve [post]
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	user, err := h.adminUC.ApproveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User approved", user)
}
