package v1

import (
	"net/http"
	"strings"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionUC domain.ConnectionUsecase
}

type createConnectionRequest struct {
	TargetUserID string `json:"target_user_id"`
}

// respondConnectionRequest accepts either {"decision":"accept"} or {"status":"accepted"}.
type respondConnectionRequest struct {
	Decision string `json:"decision"`
	Status   string `json:"status"`
}

func (r respondConnectionRequest) decision() domain.ConnectionDecision {
	if r.Decision != "" {
		return domain.ConnectionDecision(strings.ToLower(strings.TrimSpace(r.Decision)))
	}
	switch domain.ConnectionStatus(strings.ToLower(strings.TrimSpace(r.Status))) {
	case domain.ConnectionStatusAccepted:
		return domain.DecisionAccept
	case domain.ConnectionStatusRejected:
		return domain.DecisionReject
	}
	return domain.ConnectionDecision(r.Status)
}

func NewConnectionHandler(protected *gin.RouterGroup, connectionUC domain.ConnectionUsecase) {
	handler := &ConnectionHandler{connectionUC: connectionUC}

	connections := protected.Group("/connections")
	{
		connections.POST("", handler.Request)
		connections.GET("", handler.List)
		connections.GET("/status/:userId", handler.Status)
		connections.PATCH("/:id", handler.Respond)
		connections.DELETE("/user/:userId", handler.Remove)
	}
}

// Request godoc
// @Summary      Send a connection request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      createConnectionRequest  true  "Target user"
// @Success      201      {object}  response.Response{data=domain.Connection}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response  "A connection already exists"
// @Router       /connections [post]
func (h *ConnectionHandler) Request(c *gin.Context) {
	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	target := strings.TrimSpace(req.TargetUserID)
	if target == "" {
		c.Error(apperror.BadRequest("target_user_id is required"))
		return
	}

	conn, err := h.connectionUC.RequestConnection(c.Request.Context(), c.GetString(string(domain.KeyUserID)), target)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Connection request sent", conn)
}

// Respond godoc
// @Summary      Accept or reject a pending request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Connection ID"
// @Param        request  body      respondConnectionRequest  true  "accept or reject"
// @Success      200      {object}  response.Response{data=domain.Connection}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /connections/{id} [patch]
func (h *ConnectionHandler) Respond(c *gin.Context) {
	var req respondConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	conn, err := h.connectionUC.RespondToConnection(c.Request.Context(), c.Param("id"), req.decision())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection "+string(conn.Status), conn)
}

// Remove godoc
// @Summary      Remove a connection or withdraw a request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "The other user's ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /connections/user/{userId} [delete]
func (h *ConnectionHandler) Remove(c *gin.Context) {
	if err := h.connectionUC.RemoveConnection(c.Request.Context(), c.Param("userId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection removed", nil)
}

// List godoc
// @Summary      List own connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "pending, accepted or rejected"
// @Param        direction  query     string  false  "incoming, outgoing or all"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=domain.Page[domain.ConnectionView]}
// @Failure      400        {object}  response.Response
// @Router       /connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.connectionUC.ListConnections(c.Request.Context(), domain.ConnectionFilter{
		Status:    domain.ConnectionStatus(c.Query("status")),
		Direction: domain.ConnectionDirection(c.Query("direction")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connections retrieved", result)
}

// Status godoc
// @Summary      Relationship with another user
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "The other user's ID"
// @Success      200     {object}  response.Response{data=domain.RelationshipView}
// @Router       /connections/status/{userId} [get]
func (h *ConnectionHandler) Status(c *gin.Context) {
	view, err := h.connectionUC.GetRelationship(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Relationship retrieved", view)
}
