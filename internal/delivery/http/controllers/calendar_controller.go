package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"whenworks/internal/delivery/http/helpers"
	"whenworks/internal/delivery/http/middleware"
	"whenworks/internal/domain"
	"whenworks/internal/schedule"
)

type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
	}
}

// TeamHeatmap godoc
// @Summary Team availability heatmap
// @Description Aggregate the team's events into per-slot busy counts for one week. Every 30-minute slot of the visible window is returned with its count and tier, so a client can paint the full grid from the response alone. The caller must be a member.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param pin path string true "Team PIN"
// @Param week query string true "Week start date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data contains the heatmap"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{pin}/heatmap [get]
func (c *CalendarController) TeamHeatmap(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	week := r.URL.Query().Get("week")
	var weekStart schedule.Date
	if week == "" {
		// Default to the Monday of the current week.
		weekStart = mondayOf(time.Now())
	} else {
		var err error
		weekStart, err = schedule.ParseDate(week)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "week must be a YYYY-MM-DD date")
			return
		}
	}

	heatmap, err := c.Service.TeamHeatmap(r.Context(), pin, userID, weekStart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrForbidden) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, heatmap)
}

func mondayOf(t time.Time) schedule.Date {
	d := schedule.DateOf(t)
	offset := (int(t.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
