package v1

import (
	"net/http"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

// NewUserHandler mounts the directory on an optional-auth group so the
// caller's connections can reveal contact details.
func NewUserHandler(directory, protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	directory.GET("/users", handler.Search)
	directory.GET("/users/:id", handler.GetProfile)

	protected.PUT("/users/me", handler.UpdateMe)
}

// Search godoc
// @Summary      Browse approved users
// @Tags         users
// @Produce      json
// @Param        role    query     string  false  "individual, private_sector or tvet"
// @Param        search  query     string  false  "Matches names, skills, sectors and industry"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  response.Response{data=domain.Page[domain.UserProfile]}
// @Failure      400     {object}  response.Response
// @Router       /users [get]
func (h *UserHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.userUC.Search(c.Request.Context(), domain.UserSearchFilter{
		Role:   domain.Role(c.Query("role")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", result)
}

// GetProfile godoc
// @Summary      View a profile
// @Description  Contact details are only included for the owner and accepted connections
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserProfile}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userUC.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateMe godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.UserProfile}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.userUC.UpdateMe(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}
