package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	reporterrors "go-leave/internal/report/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const reportCacheTTL = 5 * time.Minute

func employeeReportKey(employeeID string, year int) string {
	return fmt.Sprintf("reports:employee:%s:%d", employeeID, year)
}

func systemReportKey(year int) string {
	return fmt.Sprintf("reports:system:%d", year)
}

type Service interface {
	EmployeeReport(ctx context.Context, employeeID string, year int) (EmployeeReport, error)
	SystemReport(ctx context.Context, year int) (SystemReport, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// EmployeeReport aggregates the year for one employee. An unknown employee
// yields a zeroed report rather than an error, so dashboards render an
// empty panel instead of failing.
func (s *service) EmployeeReport(ctx context.Context, employeeID string, year int) (EmployeeReport, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeReport{}, reporterrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2100 {
		return EmployeeReport{}, reporterrors.ErrInvalidYear
	}

	cacheKey := employeeReportKey(employeeID, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp EmployeeReport
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildEmployeeReport(ctx, employeeID, year)
		if err != nil {
			return EmployeeReport{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, reportCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("employee report build failed",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return EmployeeReport{}, err
	}

	return v.(EmployeeReport), nil
}

func (s *service) buildEmployeeReport(ctx context.Context, employeeID string, year int) (EmployeeReport, error) {
	name, err := s.repo.EmployeeName(ctx, employeeID)
	if err != nil {
		return EmployeeReport{}, err
	}

	statusCounts, err := s.repo.LeaveStatusCounts(ctx, employeeID, year)
	if err != nil {
		return EmployeeReport{}, err
	}
	daysByType, err := s.repo.ApprovedDaysByType(ctx, employeeID, year)
	if err != nil {
		return EmployeeReport{}, err
	}
	balanceSnap, err := s.repo.BalanceSnapshot(ctx, employeeID, year)
	if err != nil {
		return EmployeeReport{}, err
	}
	evalSummary, err := s.repo.EvaluationStats(ctx, employeeID, year)
	if err != nil {
		return EmployeeReport{}, err
	}
	penaltySummary, err := s.repo.PenaltyStats(ctx, employeeID, year)
	if err != nil {
		return EmployeeReport{}, err
	}

	totalRequests := 0
	for _, c := range statusCounts {
		totalRequests += c
	}
	totalApprovedDays := 0
	for _, d := range daysByType {
		totalApprovedDays += d
	}

	return EmployeeReport{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Year:         year,
		Leave: LeaveSummary{
			TotalRequests:      totalRequests,
			ByStatus:           statusCounts,
			ApprovedDaysByType: daysByType,
			TotalApprovedDays:  totalApprovedDays,
		},
		Balance:    balanceSnap,
		Evaluation: evalSummary,
		Penalty:    penaltySummary,
	}, nil
}

func (s *service) SystemReport(ctx context.Context, year int) (SystemReport, error) {
	if year < 2000 || year > 2100 {
		return SystemReport{}, reporterrors.ErrInvalidYear
	}

	cacheKey := systemReportKey(year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp SystemReport
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		statusCounts, err := s.repo.SystemLeaveStatusCounts(ctx, year)
		if err != nil {
			return SystemReport{}, err
		}
		approvedDays, err := s.repo.SystemApprovedDays(ctx, year)
		if err != nil {
			return SystemReport{}, err
		}

		totalRequests := 0
		for _, c := range statusCounts {
			totalRequests += c
		}

		// Approval rate is approved over decided; pending and cancelled
		// requests are not decisions.
		decided := statusCounts["APPROVED"] + statusCounts["REJECTED"]
		rate := 0.0
		if decided > 0 {
			rate = float64(statusCounts["APPROVED"]) / float64(decided)
		}

		resp := SystemReport{
			Year:              year,
			TotalRequests:     totalRequests,
			ByStatus:          statusCounts,
			ApprovalRate:      rate,
			TotalApprovedDays: approvedDays,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, reportCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("system report build failed", zap.Int("year", year), zap.Error(err))
		return SystemReport{}, err
	}

	return v.(SystemReport), nil
}
