package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mingmingss/feedback-management/internal/service"
)

type studentHandler struct {
	students  *service.StudentService
	schedules *service.ScheduleService
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

type createStudentRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
}

// POST /api/students
func (h *studentHandler) create(c echo.Context) error {
	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	student, err := h.students.Register(c.Request().Context(), req.Name, req.Contact)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toStudentJSON(student))
}

// GET /api/students
func (h *studentHandler) list(c echo.Context) error {
	students, err := h.students.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]studentJSON, 0, len(students))
	for _, st := range students {
		out = append(out, toStudentJSON(st))
	}
	return c.JSON(http.StatusOK, echo.Map{"students": out})
}

// GET /api/students/:id
func (h *studentHandler) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	student, feedbacks, err := h.students.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"student":   toStudentJSON(student),
		"feedbacks": toFeedbackListJSON(feedbacks),
	})
}

// DELETE /api/students/:id
func (h *studentHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.students.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "학생 정보가 성공적으로 삭제되었습니다."})
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/students/:id/notes
func (h *studentHandler) updateNotes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateNotesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.students.UpdateNotes(c.Request().Context(), id, req.Notes); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "학생 메모가 업데이트되었습니다."})
}

// GET /api/students/:id/scheduled-classes
func (h *studentHandler) listScheduledClasses(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	classes, err := h.schedules.ListForStudent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"scheduled_classes": toScheduledClassListJSON(classes)})
}
