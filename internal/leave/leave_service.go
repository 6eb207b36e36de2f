package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-leave/internal/balance"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config carries the balance-accounting policy. AllowNegativeBalance
// restores the legacy behavior where an approval may drive a bucket's
// remaining days below zero; the default is to refuse with
// ErrInsufficientBalance.
type Config struct {
	AllowNegativeBalance bool
	Allotments           balance.Allotments
}

type Service interface {
	Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, id, reviewerID, reviewerName string) (LeaveResponse, error)
	Reject(ctx context.Context, id, reviewerID, reviewerName, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  balance.Repository
	outbox    kafka.OutboxRepository
	directory Directory
	cfg       Config
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	outbox kafka.OutboxRepository,
	directory Directory,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		outbox:    outbox,
		directory: directory,
		cfg:       cfg,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, createdByUUID, substituteUUID, startDate, endDate, err := validateSubmitRequest(actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Tenure gate, fail-closed: a missing employee or hire date means not
	// eligible, never an internal error surfaced to the caller.
	hireDate, err := s.directory.GetHireDate(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Warn("submit leave hire date lookup failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, leaveerrors.ErrNotEligible
	}
	if !EligibleAt(hireDate, time.Now().UTC()) {
		return LeaveResponse{}, leaveerrors.ErrNotEligible
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
	}

	l := &LeaveRequest{
		ID:                   uuid.New(),
		EmployeeID:           employeeUUID,
		LeaveType:            req.LeaveType,
		StartDate:            startDate,
		EndDate:              endDate,
		DaysCount:            InclusiveDays(startDate, endDate),
		Reason:               req.Reason,
		SubstituteEmployeeID: substituteUUID,
		Status:               StatusPending,
		CreatedBy:            createdByUUID,
	}

	// First eligible request provisions the year's balance row; existing
	// rows are untouched. Untracked types carry no balance.
	if balance.Tracked(l.LeaveType) {
		if err := s.balances.WithTx(tx).Provision(ctx, &balance.LeaveBalance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			Year:           startDate.Year(),
			AnnualTotal:    s.cfg.Allotments.Annual,
			SickTotal:      s.cfg.Allotments.Sick,
			EmergencyTotal: s.cfg.Allotments.Emergency,
		}); err != nil {
			s.logger.Error("submit leave balance provision failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueRequested(ctx, s.outbox.WithTx(tx), l); err != nil {
		s.logger.Error("submit leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days_count", l.DaysCount),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, id, reviewerID, reviewerName string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
	)

	if _, err := uuid.Parse(reviewerID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if Terminal(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	stamp := ReviewStamp{ReviewerID: reviewerID, ReviewerName: reviewerName}

	// The pending-guarded update decides the race: a concurrent approval
	// that lost sees zero rows here and never reaches the debit below, so
	// the balance is debited at most once per request.
	updated, err := qtx.MarkReviewed(ctx, id, StatusApproved, stamp)
	if err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !updated {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	if balance.Tracked(l.LeaveType) {
		qbal := s.balances.WithTx(tx)

		// Requests approved before a balance row exists provision it here.
		if err := qbal.Provision(ctx, &balance.LeaveBalance{
			ID:             uuid.New(),
			EmployeeID:     l.EmployeeID,
			Year:           l.StartDate.Year(),
			AnnualTotal:    s.cfg.Allotments.Annual,
			SickTotal:      s.cfg.Allotments.Sick,
			EmergencyTotal: s.cfg.Allotments.Emergency,
		}); err != nil {
			s.logger.Error("approve leave balance provision failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		debited, err := qbal.Debit(
			ctx,
			l.EmployeeID.String(),
			l.StartDate.Year(),
			l.LeaveType,
			l.DaysCount,
			s.cfg.AllowNegativeBalance,
		)
		if err != nil {
			s.logger.Error("approve leave debit failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if !debited {
			s.logger.Warn("approve leave refused on insufficient balance",
				zap.String("leave_id", id),
				zap.String("leave_type", l.LeaveType),
				zap.Int("days_count", l.DaysCount),
			)
			return LeaveResponse{}, balanceerrors.ErrInsufficientBalance
		}
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	reviewerUUID := uuid.MustParse(reviewerID)
	l.ReviewedBy = &reviewerUUID
	l.ReviewedByName = &reviewerName
	l.ReviewedAt = &now

	if err := s.enqueueDecided(ctx, s.outbox.WithTx(tx), l, events.LeaveApprovedEventType); err != nil {
		s.logger.Error("approve leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, id, reviewerID, reviewerName, rejectionReason string) (LeaveResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
	)

	if _, err := uuid.Parse(reviewerID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(rejectionReason) == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingRejectionReason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if Terminal(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	stamp := ReviewStamp{
		ReviewerID:      reviewerID,
		ReviewerName:    reviewerName,
		RejectionReason: &rejectionReason,
	}
	updated, err := qtx.MarkReviewed(ctx, id, StatusRejected, stamp)
	if err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !updated {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	l.Status = StatusRejected
	reviewerUUID := uuid.MustParse(reviewerID)
	l.ReviewedBy = &reviewerUUID
	l.ReviewedByName = &reviewerName
	l.ReviewedAt = &now
	l.RejectionReason = &rejectionReason

	if err := s.enqueueDecided(ctx, s.outbox.WithTx(tx), l, events.LeaveRejectedEventType); err != nil {
		s.logger.Error("reject leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotCancellable
	}

	updated, err := qtx.MarkCancelled(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !updated {
		return LeaveResponse{}, leaveerrors.ErrNotCancellable
	}

	l.Status = StatusCancelled

	if err := s.enqueueDecided(ctx, s.outbox.WithTx(tx), l, events.LeaveCancelledEventType); err != nil {
		s.logger.Error("cancel leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) enqueueRequested(ctx context.Context, outbox kafka.OutboxRepository, l *LeaveRequest) error {
	event := events.LeaveRequestedEvent{
		EventType:  events.LeaveRequestedEventType,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveRequestedEventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDecided(ctx context.Context, outbox kafka.OutboxRepository, l *LeaveRequest, eventType string) error {
	event := events.LeaveDecidedEvent{
		EventType:  eventType,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	if l.ReviewedBy != nil {
		event.ReviewedBy = l.ReviewedBy.String()
	}
	if l.ReviewedByName != nil {
		event.ReviewedByName = *l.ReviewedByName
	}
	if l.RejectionReason != nil {
		event.RejectionReason = *l.RejectionReason
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateSubmitRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, *uuid.UUID, time.Time, time.Time, error) {
	fail := func(err error) (uuid.UUID, uuid.UUID, *uuid.UUID, time.Time, time.Time, error) {
		return uuid.Nil, uuid.Nil, nil, time.Time{}, time.Time{}, err
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return fail(leaveerrors.ErrInvalidEmployeeID)
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return fail(leaveerrors.ErrInvalidActorID)
	}

	var substituteUUID *uuid.UUID
	if req.SubstituteEmployeeID != nil && *req.SubstituteEmployeeID != "" {
		parsed, err := uuid.Parse(*req.SubstituteEmployeeID)
		if err != nil {
			return fail(leaveerrors.ErrInvalidSubstituteID)
		}
		substituteUUID = &parsed
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return fail(err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return fail(err)
	}
	if startDate.After(endDate) {
		return fail(leaveerrors.ErrInvalidDateRange)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fail(leaveerrors.ErrMissingReason)
	}

	return employeeUUID, createdByUUID, substituteUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.SubstituteEmployeeID != nil {
		v := l.SubstituteEmployeeID.String()
		resp.SubstituteEmployeeID = &v
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewedByName = l.ReviewedByName
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
