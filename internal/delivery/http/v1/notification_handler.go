package v1

import (
	"net/http"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers reads on the optional-auth group so anonymous
// callers still see the general feed. Authoring is limited to TVET by requireTVET.
func NewNotificationHandler(optional, protected *gin.RouterGroup, requireTVET gin.HandlerFunc, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	optional.GET("/notifications", handler.List)

	notifications := protected.Group("/notifications")
	{
		notifications.POST("", requireTVET, handler.Create)
		notifications.GET("/filter", handler.Filter)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Publish a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.DispatchRequest  true  "Notification"
// @Success      201      {object}  response.Response{data=domain.Notification}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req domain.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	n, err := h.notificationUC.Author(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Notification created", n)
}

// List godoc
// @Summary      Notifications visible to the caller
// @Description  General notifications plus, when signed in, the caller's own
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.NotificationList}
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.notificationUC.ListForViewer(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications retrieved", list)
}

// Filter godoc
// @Summary      Notifications for one recipient
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        recipient_type  query     string  true   "user or general"
// @Param        recipient_id    query     string  false  "Required when recipient_type is user"
// @Success      200             {object}  response.Response{data=domain.NotificationList}
// @Failure      400             {object}  response.Response
// @Failure      403             {object}  response.Response
// @Router       /notifications/filter [get]
func (h *NotificationHandler) Filter(c *gin.Context) {
	list, err := h.notificationUC.Filter(c.Request.Context(), domain.NotificationQuery{
		RecipientType: domain.RecipientType(c.Query("recipient_type")),
		RecipientID:   c.Query("recipient_id"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications retrieved", list)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response{data=domain.Notification}
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.notificationUC.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", n)
}

// Delete godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.notificationUC.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification deleted", nil)
}
