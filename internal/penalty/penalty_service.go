package penalty

import (
	"context"
	"database/sql"
	"errors"
	"time"

	penaltyerrors "go-leave/internal/penalty/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, issuerID string, req CreatePenaltyRequest) (PenaltyResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]PenaltyResponse, error)
	GetByID(ctx context.Context, id string) (PenaltyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("penalty.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("penalty.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, issuerID string, req CreatePenaltyRequest) (PenaltyResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidEmployeeID
	}
	issuerUUID, err := uuid.Parse(issuerID)
	if err != nil {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidDateFormat
	}
	if req.Amount < 0 {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PenaltyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Penalty{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Date:       date,
		Kind:       req.Kind,
		Amount:     req.Amount,
		Reason:     req.Reason,
		IssuedBy:   issuerUUID,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create penalty persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return PenaltyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PenaltyResponse{}, err
	}

	s.logger.Info("create penalty success",
		zap.String("penalty_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("kind", p.Kind),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]PenaltyResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, penaltyerrors.ErrInvalidEmployeeID
	}
	penalties, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(penalties), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PenaltyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PenaltyResponse{}, penaltyerrors.ErrPenaltyNotFound
		}
		return PenaltyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return penaltyerrors.ErrPenaltyNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete penalty success", zap.String("penalty_id", id))
	return nil
}

func mapToResponse(p Penalty) PenaltyResponse {
	resp := PenaltyResponse{
		ID:         p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Date:       p.Date.Format("2006-01-02"),
		Kind:       p.Kind,
		Amount:     p.Amount,
		Reason:     p.Reason,
		IssuedBy:   p.IssuedBy.String(),
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(penalties []Penalty) []PenaltyResponse {
	resp := make([]PenaltyResponse, len(penalties))
	for i, p := range penalties {
		resp[i] = mapToResponse(p)
	}
	return resp
}
