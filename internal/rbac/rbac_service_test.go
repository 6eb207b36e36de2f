package rbac

import (
	"testing"

	"go-leave/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockRepo struct {
	employeeID uuid.UUID
	roleID     uuid.UUID
	resource   string
	action     string
	roles      []Role
	granted    []*EmployeeRole
}

func (m *mockRepo) GetEmployeeRoles() ([]EmployeeRole, error) {
	return []EmployeeRole{
		{EmployeeID: m.employeeID, RoleID: m.roleID},
	}, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermission, error) {
	return []RolePermission{
		{RoleID: m.roleID, Resource: m.resource, Action: m.action},
	}, nil
}

func (m *mockRepo) ListRoles() ([]Role, error) {
	return m.roles, nil
}

func (m *mockRepo) CreateRole(role *Role) error {
	m.roles = append(m.roles, *role)
	return nil
}

func (m *mockRepo) GrantRole(grant *EmployeeRole) error {
	m.granted = append(m.granted, grant)
	return nil
}

func (m *mockRepo) PermissionsByRole(roleID string) ([]RolePermission, error) {
	return []RolePermission{
		{RoleID: m.roleID, Resource: m.resource, Action: m.action},
	}, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	employeeID := uuid.New()
	roleID := uuid.New()

	repo := &mockRepo{
		employeeID: employeeID,
		roleID:     roleID,
		resource:   "leave",
		action:     "approve",
	}
	svc := NewService(repo, newTestEnforcer(t))

	t.Run("success granted permission", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID.String(),
			Resource:   "leave",
			Action:     "approve",
		})
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative wrong action", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID.String(),
			Resource:   "leave",
			Action:     "delete",
		})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("negative unknown subject", func(t *testing.T) {
		ok, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: uuid.New().String(),
			Resource:   "leave",
			Action:     "approve",
		})
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRBACService_GrantRole(t *testing.T) {
	repo := &mockRepo{
		employeeID: uuid.New(),
		roleID:     uuid.New(),
		resource:   "leave",
		action:     "read",
	}
	svc := NewService(repo, newTestEnforcer(t))

	t.Run("success", func(t *testing.T) {
		err := svc.GrantRole(domain.GrantRoleRequest{
			EmployeeID: uuid.New().String(),
			RoleID:     uuid.New().String(),
		})
		assert.NoError(t, err)
		assert.Len(t, repo.granted, 1)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		err := svc.GrantRole(domain.GrantRoleRequest{
			EmployeeID: "nope",
			RoleID:     uuid.New().String(),
		})
		assert.Error(t, err)
	})
}
