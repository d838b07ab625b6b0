package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mingmingss/feedback-management/internal/service"
)

type feedbackHandler struct {
	feedback *service.FeedbackService
}

type createFeedbackRequest struct {
	StudentID          int64  `json:"student_id" validate:"required"`
	ClassDate          string `json:"class_date" validate:"required"`
	Textbook           string `json:"textbook"`
	HomeworkCompletion int    `json:"homework_completion" validate:"min=0,max=100"`
	ClassContent       string `json:"class_content"`
	ParentMessage      string `json:"parent_message"`
	Compose            bool   `json:"compose"`
}

// POST /api/feedback
func (h *feedbackHandler) create(c echo.Context) error {
	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.feedback.Create(c.Request().Context(), service.CreateFeedbackInput{
		StudentID:          req.StudentID,
		ClassDate:          req.ClassDate,
		Textbook:           req.Textbook,
		HomeworkCompletion: req.HomeworkCompletion,
		ClassContent:       req.ClassContent,
		ParentMessage:      req.ParentMessage,
		Compose:            req.Compose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFeedbackJSON(fb))
}

type updateFeedbackRequest struct {
	ClassDate          *string `json:"class_date"`
	Textbook           *string `json:"textbook"`
	HomeworkCompletion *int    `json:"homework_completion" validate:"omitempty,min=0,max=100"`
	ClassContent       *string `json:"class_content"`
	ParentMessage      *string `json:"parent_message"`
}

// PUT /api/feedback/:id
func (h *feedbackHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.feedback.Update(c.Request().Context(), id, service.UpdateFeedbackInput{
		ClassDate:          req.ClassDate,
		Textbook:           req.Textbook,
		HomeworkCompletion: req.HomeworkCompletion,
		ClassContent:       req.ClassContent,
		ParentMessage:      req.ParentMessage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackJSON(fb))
}

// DELETE /api/feedback/:id
func (h *feedbackHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.feedback.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "피드백이 성공적으로 삭제되었습니다."})
}

// GET /api/feedback/:studentID
func (h *feedbackHandler) listForStudent(c echo.Context) error {
	studentID, err := pathID(c, "studentID")
	if err != nil {
		return err
	}

	feedbacks, err := h.feedback.ListForStudent(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"feedbacks": toFeedbackListJSON(feedbacks)})
}

type markAbsentRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	ClassDate string `json:"class_date" validate:"required"`
}

// POST /api/feedback/mark-absent
func (h *feedbackHandler) markAbsent(c echo.Context) error {
	var req markAbsentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ov, fb, err := h.feedback.MarkAbsent(c.Request().Context(), req.StudentID, req.ClassDate)
	if err != nil {
		return err
	}

	resp := echo.Map{
		"student_id": ov.StudentID,
		"class_date": req.ClassDate,
		"is_absent":  ov.IsAbsent,
	}
	if fb != nil {
		resp["feedback_id"] = fb.ID
	}
	return c.JSON(http.StatusOK, resp)
}
