package httpapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/service"
)

type scheduleHandler struct {
	schedules *service.ScheduleService
}

type createScheduledClassRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
	// Either a single day_of_week or a days_of_week list; the list form
	// creates one class per weekday under a shared group id.
	DayOfWeek       *int   `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	DaysOfWeek      []int  `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
	StartTime       string `json:"start_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes"`
}

// POST /api/scheduled-classes
func (h *scheduleHandler) create(c echo.Context) error {
	var req createScheduledClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	weekdays := req.DaysOfWeek
	if req.DayOfWeek != nil {
		weekdays = append([]int{*req.DayOfWeek}, weekdays...)
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}

	classes, err := h.schedules.CreateClasses(c.Request().Context(), req.StudentID, weekdays, req.StartTime, duration)
	if err != nil {
		return err
	}

	if len(classes) == 1 {
		return c.JSON(http.StatusCreated, toScheduledClassJSON(classes[0]))
	}
	return c.JSON(http.StatusCreated, echo.Map{"scheduled_classes": toScheduledClassListJSON(classes)})
}

// GET /api/scheduled-classes?day_of_week=N
//
// Without the day_of_week filter, every active class is returned.
func (h *scheduleHandler) listActive(c echo.Context) error {
	var (
		classes []*model.ScheduledClass
		err     error
	)
	if raw := c.QueryParam("day_of_week"); raw != "" {
		weekday, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day_of_week")
		}
		classes, err = h.schedules.ListForWeekday(c.Request().Context(), weekday)
	} else {
		classes, err = h.schedules.ListActive(c.Request().Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"scheduled_classes": toScheduledClassListJSON(classes)})
}

type updateScheduledClassRequest struct {
	StudentID       *int64  `json:"student_id"`
	DayOfWeek       *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	IsActive        *bool   `json:"is_active"`
}

// PUT /api/scheduled-classes/:id
func (h *scheduleHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateScheduledClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	class, err := h.schedules.UpdateClass(c.Request().Context(), id, service.UpdateClassInput{
		StudentID:       req.StudentID,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toScheduledClassJSON(class))
}

// DELETE /api/scheduled-classes/:id
func (h *scheduleHandler) deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.schedules.DeactivateClass(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Scheduled class deactivated successfully"})
}

// DELETE /api/schedule-groups/:groupID
func (h *scheduleHandler) deactivateGroup(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
	}

	if err := h.schedules.DeactivateGroup(c.Request().Context(), groupID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Schedule group deactivated successfully"})
}
