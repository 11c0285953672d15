package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/employee"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (Tokens, AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, AuthResponse, error)
	Me(ctx context.Context, employeeNo int64) (AuthResponse, error)
	SetPassword(ctx context.Context, req SetPasswordRequest) error
}

type service struct {
	repo      Repository
	directory employee.Directory
	secret    []byte
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, directory employee.Directory, secret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		secret:    []byte(secret),
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Tokens, AuthResponse, error) {
	cred, err := s.repo.FindByEmployeeNo(ctx, req.EmployeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}
	if cred == nil || !cred.IsActive {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.Int64("employee_no", req.EmployeeNo))
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// A terminated employee keeps the row but cannot sign in.
	emp, err := s.directory.FindByNo(ctx, req.EmployeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if emp.TerminationDate != nil && emp.TerminationDate.Before(s.now()) {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	tokens, err := s.issue(req.EmployeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}
	s.logger.Info("login succeeded", zap.Int64("employee_no", req.EmployeeNo))
	return tokens, mapEmployee(emp), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Tokens, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != tokenTypeRefresh {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	no, ok := claims["employee_no"].(float64)
	if !ok || no <= 0 {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	employeeNo := int64(no)

	cred, err := s.repo.FindByEmployeeNo(ctx, employeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}
	if cred == nil || !cred.IsActive {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	emp, err := s.directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	tokens, err := s.issue(employeeNo)
	if err != nil {
		return Tokens{}, AuthResponse{}, err
	}
	return tokens, mapEmployee(emp), nil
}

func (s *service) Me(ctx context.Context, employeeNo int64) (AuthResponse, error) {
	emp, err := s.directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return AuthResponse{}, err
	}
	return mapEmployee(emp), nil
}

// SetPassword creates or replaces an employee's credential.
func (s *service) SetPassword(ctx context.Context, req SetPasswordRequest) error {
	if _, err := s.directory.FindByNo(ctx, req.EmployeeNo); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, &Credential{
		EmployeeNo:   req.EmployeeNo,
		PasswordHash: string(hashed),
		IsActive:     true,
	}); err != nil {
		return err
	}
	s.logger.Info("credential set", zap.Int64("employee_no", req.EmployeeNo))
	return nil
}

func (s *service) issue(employeeNo int64) (Tokens, error) {
	access, err := s.sign(employeeNo, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.sign(employeeNo, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) sign(employeeNo int64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"employee_no": employeeNo,
		"token_type":  tokenType,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func mapEmployee(e *employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeNo:     e.EmployeeNo,
		FullName:       e.FullName,
		DepartmentCode: e.DepartmentCode,
		ProjectCode:    e.ProjectCode,
	}
}
