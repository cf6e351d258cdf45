package v1

import (
	"net/http"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r gin.IRoutes, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	r.GET("/health/live", handler.Live)
	r.GET("/health/ready", handler.Ready)
}

// Live godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", h.healthUC.Live(c.Request.Context()))
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Fails with 503 when the database is unreachable; Redis is reported but optional
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	status, ok := h.healthUC.Ready(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusServiceUnavailable, "not ready", status)
		return
	}
	response.Success(c, http.StatusOK, "ready", status)
}
