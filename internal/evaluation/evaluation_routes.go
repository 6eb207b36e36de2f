package evaluation

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
	evaluations := r.Group("/evaluations")
	evaluations.Use(middleware.AuthMiddleware())
	{
		evaluations.GET("/me", handler.GetMine)

		evaluations.POST("", middleware.RBACAuthorize(rbacService, "evaluation", "manage"), handler.Create)
		evaluations.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetByEmployee)
		evaluations.GET("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetByID)
		evaluations.PUT("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "manage"), handler.Update)
		evaluations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "manage"), handler.Delete)
	}
}
