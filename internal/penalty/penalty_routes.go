package penalty

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
	penalties := r.Group("/penalties")
	penalties.Use(middleware.AuthMiddleware())
	{
		penalties.GET("/me", handler.GetMine)

		penalties.POST("", middleware.RBACAuthorize(rbacService, "penalty", "manage"), handler.Create)
		penalties.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "penalty", "read"), handler.GetByEmployee)
		penalties.GET("/:id", middleware.RBACAuthorize(rbacService, "penalty", "read"), handler.GetByID)
		penalties.DELETE("/:id", middleware.RBACAuthorize(rbacService, "penalty", "manage"), handler.Delete)
	}
}
