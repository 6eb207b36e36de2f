package rbac

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService Service) {
	roles := r.Group("/rbac")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("/roles", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.ListRoles)
		roles.POST("/roles", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.CreateRole)
		roles.POST("/grants", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.GrantRole)
		roles.POST("/check", handler.Check)
	}
}
