package report

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/me", handler.GetMyReport)

		reports.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetEmployeeReport)
		reports.GET("/system", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetSystemReport)
	}
}
