package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", handler.GetMine)
		balances.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByEmployee)
		balances.POST("", middleware.RBACAuthorize(rbacService, "balance", "manage"), handler.Provision)
	}
}
