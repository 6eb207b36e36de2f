package rbac

import (
	"sync"

	"go-leave/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListRoles() ([]domain.RoleResponse, error)
	CreateRole(req domain.CreateRoleRequest) (domain.RoleResponse, error)
	GrantRole(req domain.GrantRoleRequest) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			er.EmployeeID.String(),
			er.RoleID.String(),
		)
		if err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID.String(),
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Policies are reloaded per check so grants take effect without a
	// restart; acceptable at this service's request volumes.
	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	return s.enforcer.Enforce(req.EmployeeID, req.Resource, req.Action)
}

func (s *service) ListRoles() ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles()
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := s.repo.PermissionsByRole(role.ID.String())
		if err != nil {
			return nil, err
		}
		permLabels := make([]string, 0, len(perms))
		for _, p := range perms {
			permLabels = append(permLabels, p.Resource+":"+p.Action)
		}
		resp = append(resp, domain.RoleResponse{
			ID:          role.ID.String(),
			Name:        role.Name,
			Description: role.Description,
			Permissions: permLabels,
		})
	}
	return resp, nil
}

func (s *service) CreateRole(req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}
	return domain.RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
		Permissions: req.Permissions,
	}, nil
}

func (s *service) GrantRole(req domain.GrantRoleRequest) error {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return err
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return err
	}
	return s.repo.GrantRole(&EmployeeRole{
		EmployeeID: employeeID,
		RoleID:     roleID,
	})
}
