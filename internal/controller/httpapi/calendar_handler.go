package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mingmingss/feedback-management/internal/service"
)

type calendarHandler struct {
	calendar  *service.CalendarService
	schedules *service.ScheduleService
}

// GET /api/calendar/status?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
//
// The primary caller pattern is a full calendar month (first to last
// day, both inclusive). Every date in the range appears in the response,
// with an empty class list when nothing is scheduled.
func (h *calendarHandler) status(c echo.Context) error {
	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")
	if startDate == "" || endDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	days, err := h.calendar.GetCalendarStatus(c.Request().Context(), startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"calendar": toCalendarJSON(days)})
}

// GET /api/calendar/image?year=YYYY&month=M
func (h *calendarHandler) monthImage(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	png, err := h.calendar.RenderMonthImage(c.Request().Context(), year, time.Month(month))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

type addAdHocRequest struct {
	StudentID       int64  `json:"student_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

// POST /api/calendar/ad-hoc
//
// Adds a one-off class to a single date without touching the weekly
// recurrence. If the student also has a recurring class on that weekday,
// the day shows both occurrences.
func (h *calendarHandler) addAdHoc(c echo.Context) error {
	var req addAdHocRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ov, err := h.schedules.AddAdHocOccurrence(c.Request().Context(), req.StudentID, req.Date, req.StartTime, req.DurationMinutes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ov)
}
