package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/service"
)

type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

// New builds the echo server with all routes registered. The route
// surface mirrors the academy UI's API: student roster, per-lesson
// feedback, weekly schedule, and the calendar status projection.
func New(
	students *service.StudentService,
	feedback *service.FeedbackService,
	schedules *service.ScheduleService,
	calendar *service.CalendarService,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	sh := &studentHandler{students: students, schedules: schedules}
	fh := &feedbackHandler{feedback: feedback}
	sch := &scheduleHandler{schedules: schedules}
	ch := &calendarHandler{calendar: calendar, schedules: schedules}

	api := e.Group("/api")

	api.GET("/students", sh.list)
	api.POST("/students", sh.create)
	api.GET("/students/:id", sh.get)
	api.DELETE("/students/:id", sh.delete)
	api.PUT("/students/:id/notes", sh.updateNotes)
	api.GET("/students/:id/scheduled-classes", sh.listScheduledClasses)

	api.POST("/feedback", fh.create)
	api.POST("/feedback/mark-absent", fh.markAbsent)
	api.GET("/feedback/:studentID", fh.listForStudent)
	api.PUT("/feedback/:id", fh.update)
	api.DELETE("/feedback/:id", fh.delete)

	api.GET("/scheduled-classes", sch.listActive)
	api.POST("/scheduled-classes", sch.create)
	api.PUT("/scheduled-classes/:id", sch.update)
	api.DELETE("/scheduled-classes/:id", sch.deactivate)
	api.DELETE("/schedule-groups/:groupID", sch.deactivateGroup)

	api.GET("/calendar/status", ch.status)
	api.GET("/calendar/image", ch.monthImage)
	api.POST("/calendar/ad-hoc", ch.addAdHoc)

	return &Server{echo: e, logger: logger}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, used by handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
