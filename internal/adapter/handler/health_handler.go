package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/famly-backend/internal/pkg/httputil"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health godoc
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	response.HealthResponse
//	@Failure	503	{object}	response.HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		_ = c.Error(err)
		httputil.JSON(c, http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable"})
		return
	}

	httputil.OK(c, response.HealthResponse{Status: "ok"})
}
