package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		wrapped := fmt.Errorf("approve: %w", apperror.ErrNotFound)

		got := apperror.ToHTTP(wrapped)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
		assert.Equal(t, "approve: Resource not found", got.Details)
	})

	t.Run("bare sentinel has no details", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Nil(t, got.Details)
	})

	t.Run("wrapped cause is exposed as details", func(t *testing.T) {
		err := apperror.Wrap(errors.New("level 2"), apperror.CodeResolution, "approver could not be resolved", http.StatusUnprocessableEntity)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
		assert.Equal(t, "level 2", got.Details)
	})

	t.Run("plain error is internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
	})
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", http.StatusInternalServerError))
}

type bindTarget struct {
	LeaveType string `json:"leave_type" validate:"required,oneof=ANNUAL SICK"`
	Days      int    `json:"days" validate:"gt=0"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	t.Run("required", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(bindTarget{Days: 1}))
		assert.Equal(t, "Leave Type is required", err.Error())
	})

	t.Run("oneof", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(bindTarget{LeaveType: "X", Days: 1}))
		assert.Equal(t, "Leave Type must be one of [ANNUAL SICK]", err.Error())
	})

	t.Run("range", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(bindTarget{LeaveType: "SICK"}))
		assert.Equal(t, "Days is out of range", err.Error())
	})

	t.Run("not a validation error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("EOF"))
		assert.Equal(t, "Invalid input", err.Error())
	})
}

func TestInit_CustomTags(t *testing.T) {
	apperror.Init()

	type payload struct {
		Day    string `json:"start_date" binding:"required,ymd"`
		Month  string `json:"salary_month" binding:"required,ym"`
		Amount string `json:"amount" binding:"required,amount"`
	}

	tests := []struct {
		name string
		in   payload
		want string
	}{
		{"valid", payload{"2026-03-01", "2026-03", "10.50"}, ""},
		{"bad day", payload{"01/03/2026", "2026-03", "10"}, "Start Date must be a date (YYYY-MM-DD)"},
		{"bad month", payload{"2026-03-01", "2026-13", "10"}, "Salary Month must be a month (YYYY-MM)"},
		{"zero amount", payload{"2026-03-01", "2026-03", "0"}, "Amount must be a positive amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, apperror.MapValidationError(err), tt.want)
		})
	}
}
