package balance

import (
	"context"
	"errors"

	balanceerrors "go-leave/internal/balance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo       Repository
	allotments Allotments
	logger     *zap.Logger
}

func NewService(repo Repository, allotments Allotments, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, allotments: allotments, logger: l}
}

func (s *service) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return BalanceResponse{}, balanceerrors.ErrInvalidYear
	}

	b, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	b := &LeaveBalance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		Year:           req.Year,
		AnnualTotal:    s.allotments.Annual,
		SickTotal:      s.allotments.Sick,
		EmergencyTotal: s.allotments.Emergency,
	}

	if err := s.repo.Provision(ctx, b); err != nil {
		s.logger.Error("provision balance failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	// Read back: the upsert is a no-op when the row already existed.
	stored, err := s.repo.FindByEmployeeAndYear(ctx, req.EmployeeID, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("balance provisioned",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
	)
	return mapToResponse(*stored), nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:         b.ID.String(),
		EmployeeID: b.EmployeeID.String(),
		Year:       b.Year,

		AnnualTotal:     b.AnnualTotal,
		AnnualUsed:      b.AnnualUsed,
		AnnualRemaining: b.AnnualRemaining,

		SickTotal:     b.SickTotal,
		SickUsed:      b.SickUsed,
		SickRemaining: b.SickRemaining,

		EmergencyTotal:     b.EmergencyTotal,
		EmergencyUsed:      b.EmergencyUsed,
		EmergencyRemaining: b.EmergencyRemaining,
	}
}
