package report

import (
	"net/http"
	"strconv"
	"time"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) yearOrCurrent(c *gin.Context) (int, bool) {
	yearStr := c.DefaultQuery("year", "")
	if yearStr == "" {
		return time.Now().UTC().Year(), true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", "year must be a number")
		return 0, false
	}
	return year, true
}

func (h *Handler) GetEmployeeReport(c *gin.Context) {
	year, ok := h.yearOrCurrent(c)
	if !ok {
		return
	}

	resp, err := h.service.EmployeeReport(c.Request.Context(), c.Param("employee_id"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyReport(c *gin.Context) {
	year, ok := h.yearOrCurrent(c)
	if !ok {
		return
	}

	employeeID := c.GetString("employee_id")

	resp, err := h.service.EmployeeReport(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSystemReport(c *gin.Context) {
	year, ok := h.yearOrCurrent(c)
	if !ok {
		return
	}

	resp, err := h.service.SystemReport(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
