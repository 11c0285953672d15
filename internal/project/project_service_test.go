package project_test

import (
	"context"
	"testing"

	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
	"go-hrms/internal/project"
	projecterrors "go-hrms/internal/project/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	project.Repository
	projects map[string]bool
}

func (f *fakeRepository) ProjectExists(ctx context.Context, code string) (bool, error) {
	return f.projects[code], nil
}

type fakeDirectory struct {
	projectCode *string
}

func (f fakeDirectory) FindByNo(ctx context.Context, no int64) (*employee.Employee, error) {
	return &employee.Employee{EmployeeNo: no, ProjectCode: f.projectCode}, nil
}
func (fakeDirectory) DepartmentManager(ctx context.Context, code string) (int64, error) { return 1, nil }
func (fakeDirectory) ProjectManager(ctx context.Context, code string) (int64, error)    { return 1, nil }

type recordingSubmitter struct {
	types    []approval.RequestType
	requests []approval.Request
}

func (r *recordingSubmitter) Submit(ctx context.Context, t approval.RequestType, req approval.Request) error {
	r.types = append(r.types, t)
	r.requests = append(r.requests, req)
	req.ApprovalState().Status = approval.StatusPending
	return nil
}

func strPtr(s string) *string { return &s }

func newService(dir fakeDirectory) (project.Service, *recordingSubmitter) {
	sub := &recordingSubmitter{}
	repo := &fakeRepository{projects: map[string]bool{"P-1": true, "P-2": true}}
	return project.NewService(repo, dir, sub), sub
}

func TestService_RequestPayment(t *testing.T) {
	svc, sub := newService(fakeDirectory{})

	resp, err := svc.RequestPayment(context.Background(), 7, project.CreatePaymentRequest{
		ProjectCode: "P-1", Payee: "Acme Scaffolding", Amount: "12500.5",
	})
	assert.NoError(t, err)
	assert.Equal(t, []approval.RequestType{approval.TypeProjectPayment}, sub.types)
	assert.Equal(t, "P-1", sub.requests[0].ApprovalScope().ProjectCode)
	assert.Equal(t, int64(7), sub.requests[0].RequesterNo())
	assert.Equal(t, "12500.50", resp.Details["amount"])

	_, err = svc.RequestPayment(context.Background(), 7, project.CreatePaymentRequest{
		ProjectCode: "P-9", Payee: "x", Amount: "1",
	})
	assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)

	_, err = svc.RequestPayment(context.Background(), 7, project.CreatePaymentRequest{
		ProjectCode: "P-1", Payee: "x", Amount: "-3",
	})
	assert.ErrorIs(t, err, projecterrors.ErrInvalidAmount)
}

func TestService_RequestTransfer(t *testing.T) {
	t.Run("scoped by the source project", func(t *testing.T) {
		svc, sub := newService(fakeDirectory{projectCode: strPtr("P-1")})

		resp, err := svc.RequestTransfer(context.Background(), 7, project.CreateTransferRequest{
			EmployeeNo: 100, ToProject: "P-2", EffectiveDate: "2026-04-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, "P-1", resp.ProjectCode)
		assert.Equal(t, "P-1", sub.requests[0].ApprovalScope().ProjectCode)
	})

	t.Run("same project", func(t *testing.T) {
		svc, _ := newService(fakeDirectory{projectCode: strPtr("P-2")})
		_, err := svc.RequestTransfer(context.Background(), 7, project.CreateTransferRequest{
			EmployeeNo: 100, ToProject: "P-2", EffectiveDate: "2026-04-01",
		})
		assert.ErrorIs(t, err, projecterrors.ErrSameProject)
	})

	t.Run("employee without project", func(t *testing.T) {
		svc, _ := newService(fakeDirectory{})
		_, err := svc.RequestTransfer(context.Background(), 7, project.CreateTransferRequest{
			EmployeeNo: 100, ToProject: "P-2", EffectiveDate: "2026-04-01",
		})
		assert.ErrorIs(t, err, projecterrors.ErrNotOnProject)
	})
}

func TestService_RequestLabor(t *testing.T) {
	svc, sub := newService(fakeDirectory{})

	resp, err := svc.RequestLabor(context.Background(), 7, project.CreateLaborRequest{
		ProjectCode: "P-1",
		StartDate:   "2026-05-01",
		Months:      6,
		Lines: []project.LaborLine{
			{Trade: "Electrician", Quantity: 4},
			{Trade: "Welder", Quantity: 2},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, resp.Details["headcount"])

	header := sub.requests[0].(*project.ProjectLaborRequestHeader)
	assert.Len(t, header.Lines, 2)
	for _, l := range header.Lines {
		assert.Equal(t, header.ID, l.HeaderID)
		assert.NotEqual(t, uuid.Nil, l.ID)
	}

	_, err = svc.RequestLabor(context.Background(), 7, project.CreateLaborRequest{ProjectCode: "P-1", StartDate: "2026-05-01", Months: 1})
	assert.ErrorIs(t, err, projecterrors.ErrEmptyLaborRequest)
}
