package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/service"
)

type UsersHandler struct {
	metricsService service.MetricsService
	deterministic  service.TextExplainer
	model          service.TextExplainer // nil when no model is configured
}

// NewUsersHandler creates a new users handler. The model explainer may be
// nil; explanation requests then always use the deterministic explainer.
func NewUsersHandler(metricsService service.MetricsService, deterministic, model service.TextExplainer) *UsersHandler {
	return &UsersHandler{
		metricsService: metricsService,
		deterministic:  deterministic,
		model:          model,
	}
}

// GetUsers handles GET /api/v1/users
func (h *UsersHandler) GetUsers(c *gin.Context) {
	userIDs, err := h.metricsService.ListUsers(c.Request.Context())
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Default().WithContext(c.Request.Context()).Error("failed to list users", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, models.UsersResponse{UserIDs: userIDs})
}

// GetUserMetrics handles GET /api/v1/users/:user_id/metrics
func (h *UsersHandler) GetUserMetrics(c *gin.Context) {
	userID := c.Param("user_id")

	metrics, err := h.metricsService.GetUserMetrics(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Default().WithContext(c.Request.Context()).Error("failed to compute metrics",
			logger.String("user_id", userID),
			logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if metrics == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "user", userID))
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// ExplainUserMetrics handles POST /api/v1/users/:user_id/explain
//
// Explainer selection happens here, not in the explainers themselves: the
// model explainer is preferred when configured and reachable, and any model
// failure silently degrades to the deterministic explainer. The caller
// always gets an explanation for a known user.
func (h *UsersHandler) ExplainUserMetrics(c *gin.Context) {
	userID := c.Param("user_id")
	log := logger.Default().WithContext(c.Request.Context())

	metrics, err := h.metricsService.GetUserMetrics(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		log.Error("failed to compute metrics",
			logger.String("user_id", userID),
			logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if metrics == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "user", userID))
		return
	}

	var explanation string
	if h.model != nil && h.model.Available() {
		explanation, err = h.model.Explain(c.Request.Context(), metrics)
		if err != nil {
			log.Warn("model explanation failed, falling back to rule-based explainer",
				logger.String("user_id", userID),
				logger.Err(err))
			explanation = ""
		}
	}

	if explanation == "" {
		explanation, err = h.deterministic.Explain(c.Request.Context(), metrics)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			log.Error("failed to generate explanation",
				logger.String("user_id", userID),
				logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
			return
		}
	}

	c.JSON(http.StatusOK, models.ExplanationResponse{Explanation: explanation})
}
