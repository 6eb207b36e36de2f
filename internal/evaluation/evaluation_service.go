package evaluation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	evaluationerrors "go-leave/internal/evaluation/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const evaluationListKeyPrefix = "evaluations:employee:"

func evaluationListKey(employeeID string) string {
	return evaluationListKeyPrefix + employeeID
}

type Service interface {
	Create(ctx context.Context, evaluatorID string, req CreateEvaluationRequest) (EvaluationResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]EvaluationResponse, error)
	GetByID(ctx context.Context, id string) (EvaluationResponse, error)
	Update(ctx context.Context, id string, req UpdateEvaluationRequest) (EvaluationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("evaluation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("evaluation.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, evaluatorID string, req CreateEvaluationRequest) (EvaluationResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEmployeeID
	}
	evaluatorUUID, err := uuid.Parse(evaluatorID)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEmployeeID
	}
	if req.Month < 1 || req.Month > 12 {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidPeriod
	}
	if req.Score < 0 || req.Score > 100 {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidScore
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Evaluation{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		Year:        req.Year,
		Month:       req.Month,
		Score:       req.Score,
		Grade:       GradeFor(req.Score),
		Notes:       req.Notes,
		EvaluatedBy: evaluatorUUID,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Warn("create evaluation persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("year", req.Year),
			zap.Int("month", req.Month),
			zap.Error(err),
		)
		return EvaluationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	s.invalidateCache(ctx, req.EmployeeID)

	s.logger.Info("create evaluation success",
		zap.String("evaluation_id", e.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("grade", e.Grade),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]EvaluationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, evaluationerrors.ErrInvalidEmployeeID
	}

	cacheKey := evaluationListKey(employeeID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []EvaluationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		evals, err := s.repo.FindAllByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(evals)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EvaluationResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EvaluationResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEvaluationRequest) (EvaluationResponse, error) {
	if req.Score < 0 || req.Score > 100 {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidScore
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}

	e.Score = req.Score
	e.Grade = GradeFor(req.Score)
	e.Notes = req.Notes

	if err := qtx.Update(ctx, e); err != nil {
		return EvaluationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	s.invalidateCache(ctx, e.EmployeeID.String())

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return evaluationerrors.ErrEvaluationNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx, e.EmployeeID.String())

	s.logger.Info("delete evaluation success", zap.String("evaluation_id", id))
	return nil
}

func (s *service) invalidateCache(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := evaluationListKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("evaluation cache invalidation failed",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(e Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		Year:        e.Year,
		Month:       e.Month,
		Score:       e.Score,
		Grade:       e.Grade,
		Notes:       e.Notes,
		EvaluatedBy: e.EvaluatedBy.String(),
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(evals []Evaluation) []EvaluationResponse {
	resp := make([]EvaluationResponse, len(evals))
	for i, e := range evals {
		resp[i] = mapToResponse(e)
	}
	return resp
}
