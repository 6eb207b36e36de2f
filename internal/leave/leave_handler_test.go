package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn           func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn           func(ctx context.Context) ([]leave.LeaveResponse, error)
	getAllByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	getByIDFn          func(ctx context.Context, id string) (leave.LeaveResponse, error)
	approveFn          func(ctx context.Context, id, reviewerID, reviewerName string) (leave.LeaveResponse, error)
	rejectFn           func(ctx context.Context, id, reviewerID, reviewerName, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn           func(ctx context.Context, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) GetAllByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.getAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id, reviewerID, reviewerName string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, reviewerID, reviewerName)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id, reviewerID, reviewerName, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, reviewerID, reviewerName, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					DaysCount:  2,
					Reason:     req.Reason,
					Status:     leave.StatusPending,
					CreatedBy:  aid,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Nil(t, env.Error)
	})

	t.Run("success caches the response and releases the idempotency lock", func(t *testing.T) {
		actorID := uuid.New().String()
		expected := leave.LeaveResponse{
			ID:         uuid.New().String(),
			EmployeeID: uuid.New().String(),
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-11",
			DaysCount:  2,
			Reason:     "Family matters",
			Status:     leave.StatusPending,
			CreatedBy:  actorID,
		}

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return expected, nil
			},
		}

		rdb, rmock := redismock.NewClientMock()
		cacheKey := "idemp:/api/v1/leaves:" + actorID + ":req-1"
		lockKey := cacheKey + ":lock"

		payload, err := json.Marshal(expected)
		assert.NoError(t, err)
		rmock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		rmock.ExpectDel(lockKey).SetVal(1)

		h := leave.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + expected.EmployeeID + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("negative failed submission still releases the lock without caching", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrOverlappingRequest
			},
		}

		rdb, rmock := redismock.NewClientMock()
		cacheKey := "idemp:/api/v1/leaves:" + actorID + ":req-1"
		lockKey := cacheKey + ":lock"
		rmock.ExpectDel(lockKey).SetVal(1)

		h := leave.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("negative invalid leave type rejected by binding", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","leave_type":"VACATION","start_date":"2026-03-10","end_date":"2026-03-11","reason":"x"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative overlap surfaces conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrOverlappingRequest
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		reviewerID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, rid, rname string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, reviewerID, rid)
				assert.Equal(t, "Jane Manager", rname)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", reviewerID)
		c.Set("full_name", "Jane Manager")

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative already decided", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, rid, rname string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("negative missing rejection reason", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, id, rid, rname, reason string) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("success paginates in memory", func(t *testing.T) {
		responses := make([]leave.LeaveResponse, 15)
		for i := range responses {
			responses[i] = leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusPending}
		}

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				return responses, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var page []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Len(t, page, 5)
	})
}
