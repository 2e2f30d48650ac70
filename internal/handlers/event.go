package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/service"
)

type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	// Bind to RawCreateEventRequest for manual parsing and aggregated validation
	var raw models.RawCreateEventRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		// JSON syntax error (not field-level)
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	event := models.Event{ID: raw.EventID}

	// Validate required fields
	if raw.UserID == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "user_id",
			Message: "is required",
			Code:    "required",
		})
	} else {
		event.UserID = raw.UserID
	}

	if raw.EventType == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "event_type",
			Message: "is required",
			Code:    "required",
		})
	} else {
		event.EventType = raw.EventType
	}

	// Parse and validate timestamp (required)
	if raw.Timestamp == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "timestamp",
			Message: "is required",
			Code:    "required",
		})
	} else {
		ts, err := time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "timestamp",
				Message: "must be a valid RFC3339 timestamp",
				Code:    "invalid_format",
			})
		} else {
			event.Timestamp = ts
		}
	}

	// Value is optional; absent and null both mean no magnitude
	event.Value = raw.Value.ToPtr()

	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	created, err := h.eventService.CreateEvent(c.Request.Context(), &event)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"An event with this event_id already exists",
				"An event with this ID already exists"))
			return
		}
		logger.Default().WithContext(c.Request.Context()).Error("failed to create event", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, created)
}
