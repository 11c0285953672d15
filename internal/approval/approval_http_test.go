package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/approval"
	approvalerrors "go-hrms/internal/approval/errors"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApprovalService struct {
	approval.Service
	approveFn func(ctx context.Context, t approval.RequestType, id uuid.UUID, actor int64) (approval.State, error)
	rejectFn  func(ctx context.Context, t approval.RequestType, id uuid.UUID, actor int64, reason string) (approval.State, error)
	pendingFn func(ctx context.Context, t approval.RequestType, approverNo int64) ([]approval.Request, error)
}

func (f *fakeApprovalService) Approve(ctx context.Context, t approval.RequestType, id uuid.UUID, actor int64) (approval.State, error) {
	return f.approveFn(ctx, t, id, actor)
}
func (f *fakeApprovalService) Reject(ctx context.Context, t approval.RequestType, id uuid.UUID, actor int64, reason string) (approval.State, error) {
	return f.rejectFn(ctx, t, id, actor, reason)
}
func (f *fakeApprovalService) Pending(ctx context.Context, t approval.RequestType, approverNo int64) ([]approval.Request, error) {
	return f.pendingFn(ctx, t, approverNo)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newApprovalRouter(svc approval.Service, actor int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor > 0 {
			c.Set(middleware.ContextEmployeeNo, actor)
		}
		c.Next()
	})
	approval.RegisterRoutes(r.Group("/api/v1"), approval.NewHTTPHandler(svc))
	return r
}

func serve(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHTTPHandler_Approve(t *testing.T) {
	id := uuid.New()
	var gotType approval.RequestType
	svc := &fakeApprovalService{
		approveFn: func(ctx context.Context, rt approval.RequestType, got uuid.UUID, actor int64) (approval.State, error) {
			gotType = rt
			assert.Equal(t, id, got)
			assert.Equal(t, int64(42), actor)
			return approval.State{Status: approval.StatusApproved, ApprovedBy: &actor, Version: 2}, nil
		},
	}

	w, env := serve(newApprovalRouter(svc, 42), http.MethodPost, "/api/v1/approvals/loan/"+id.String()+"/approve", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, approval.TypeLoan, gotType)

	var st approval.StateResponse
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "APPROVED", st.Status)
	assert.Equal(t, 2, st.Version)
}

func TestHTTPHandler_ApproveErrors(t *testing.T) {
	expected := int64(7)
	svc := &fakeApprovalService{
		approveFn: func(ctx context.Context, rt approval.RequestType, id uuid.UUID, actor int64) (approval.State, error) {
			return approval.State{}, &approval.UnauthorizedApproverError{RequestType: rt, ActorNo: actor, Expected: &expected}
		},
	}

	t.Run("wrong approver", func(t *testing.T) {
		w, env := serve(newApprovalRouter(svc, 42), http.MethodPost, "/api/v1/approvals/LEAVE/"+uuid.NewString()+"/approve", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "UNAUTHORIZED_APPROVER", env.Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w, _ := serve(newApprovalRouter(svc, 42), http.MethodPost, "/api/v1/approvals/LEAVE/nope/approve", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		w, _ := serve(newApprovalRouter(svc, 0), http.MethodPost, "/api/v1/approvals/LEAVE/"+uuid.NewString()+"/approve", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHTTPHandler_Reject(t *testing.T) {
	svc := &fakeApprovalService{
		rejectFn: func(ctx context.Context, rt approval.RequestType, id uuid.UUID, actor int64, reason string) (approval.State, error) {
			assert.Equal(t, "over budget", reason)
			return approval.State{Status: approval.StatusRejected, RejectionReason: &reason}, nil
		},
	}
	r := newApprovalRouter(svc, 42)

	w, env := serve(r, http.MethodPost, "/api/v1/approvals/PAYROLL/"+uuid.NewString()+"/reject", `{"reason":"over budget"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var st approval.StateResponse
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "REJECTED", st.Status)
	assert.Nil(t, st.NextApproval)

	w, env = serve(r, http.MethodPost, "/api/v1/approvals/PAYROLL/"+uuid.NewString()+"/reject", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHTTPHandler_Pending(t *testing.T) {
	level := 2
	approver := int64(42)
	rows := []approval.Request{}
	for i := 0; i < 3; i++ {
		rows = append(rows, &testRequest{
			ID:        uuid.New(),
			Requester: 100 + int64(i),
			State:     approval.State{Status: approval.StatusPending, NextApproval: &approver, NextAppLevel: &level},
		})
	}
	svc := &fakeApprovalService{
		pendingFn: func(ctx context.Context, rt approval.RequestType, approverNo int64) ([]approval.Request, error) {
			if rt != approval.TypeLeave {
				return nil, approvalerrors.ErrUnknownRequestType
			}
			assert.Equal(t, approver, approverNo)
			return rows, nil
		},
	}
	r := newApprovalRouter(svc, approver)

	w, env := serve(r, http.MethodGet, "/api/v1/approvals/leave/pending?page=2&page_size=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []approval.PendingResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(102), got[0].RequesterNo)
	assert.Equal(t, 2, got[0].Level)

	w, _ = serve(r, http.MethodGet, "/api/v1/approvals/unknown/pending", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
