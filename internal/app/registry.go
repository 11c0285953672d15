package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
	"go-hrms/internal/approver"
	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/leave"
	"go-hrms/internal/loan"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/project"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/txmanager"
	"go-hrms/internal/sysconfig"
)

const masterDataCacheTTL = 10 * time.Minute

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	tx := txmanager.New(db)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)
	roleStore := sysconfig.NewStore(db, rdb, masterDataCacheTTL, logger)
	breakdownTable := employeesalary.NewRepository(db, rdb, masterDataCacheTTL, logger)
	chainRepo := approvalchain.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	adjustmentRepo := adjustment.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	loanRepo := loan.NewRepository(db)
	projectRepo := project.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	credentialRepo := auth.NewRepository(db)

	// --- Approval engine ---
	engine := approval.NewEngine(
		tx,
		chainRepo,
		approver.NewResolver(employeeRepo),
		roleStore,
		kafka.NewOutboxNotifier(outboxRepo),
		logger,
	)

	// --- Services ---
	authService := auth.NewService(credentialRepo, employeeRepo, cfg.JWTSecret, logger)
	employeeService := employee.NewService(employeeRepo, counterRepo, rdb, logger)
	adjustmentService := adjustment.NewService(adjustmentRepo, employeeRepo, engine, logger)
	attendanceService := attendance.NewService(tx, attendanceRepo, employeeRepo, engine, cfg.Shift, logger)
	leaveService := leave.NewService(tx, leaveRepo, employeeRepo, engine, logger)
	loanService := loan.NewService(tx, loanRepo, employeeRepo, engine, logger)
	projectService := project.NewService(projectRepo, employeeRepo, engine, logger)
	payrollService := payroll.NewService(
		tx,
		payrollRepo,
		payroll.Sources{
			Directory:   employeeRepo,
			Breakdown:   breakdownTable,
			Adjustments: adjustmentService,
			Attendance:  attendanceService,
			Loans:       loanService,
		},
		counterRepo,
		payroll.NewRedisLocker(rdb, cfg.Payroll.LockTTL, logger),
		engine,
		cfg.Payroll,
		logger,
	)

	// --- Request types ---
	engine.Register(adjustment.ApprovalHandlers(approval.NewStore[adjustment.MonthlyAdjustment, *adjustment.MonthlyAdjustment](db))...)
	engine.Register(
		attendance.ApprovalHandler(attendanceService, approval.NewStore[attendance.ManualAttendanceRequest, *attendance.ManualAttendanceRequest](db)),
		leave.ApprovalHandler(leaveService, approval.NewStore[leave.EmployeeLeave, *leave.EmployeeLeave](db)),
		payroll.ApprovalHandler(payrollService, approval.NewStore[payroll.SalaryHeader, *payroll.SalaryHeader](db)),
	)
	engine.Register(loan.ApprovalHandlers(
		loanService,
		approval.NewStore[loan.Loan, *loan.Loan](db),
		approval.NewStore[loan.PostponementRequest, *loan.PostponementRequest](db),
	)...)
	engine.Register(project.ApprovalHandlers(
		approval.NewStore[project.ProjectPaymentRequest, *project.ProjectPaymentRequest](db),
		approval.NewStore[project.ProjectTransferRequest, *project.ProjectTransferRequest](db),
		approval.NewStore[project.ProjectLaborRequestHeader, *project.ProjectLaborRequestHeader](db),
	)...)

	// --- Guards ---
	hrOnly := middleware.RequireSystemRole(roleStore, sysconfig.RoleHRManager)
	payrollGuard := middleware.RequireSystemRole(roleStore,
		sysconfig.RoleHRManager, sysconfig.RoleFinanceManager)

	// --- Routes Registration ---
	public := router.Group("/api/v1")
	public.Use(middleware.ContextLogger(logger))

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.ContextLogger(logger))
	api.Use(middleware.RateLimitByEmployee(10, 30))
	{
		auth.RegisterRoutes(public, api, auth.NewHandler(authService, logger), hrOnly)
		approval.RegisterRoutes(api, approval.NewHTTPHandler(engine, logger), rdb)
		approvalchain.RegisterRoutes(api, approvalchain.NewHandler(chainRepo, logger), hrOnly)
		employee.RegisterRoutes(api, employee.NewHandler(employeeService, logger), hrOnly)
		adjustment.RegisterRoutes(api, adjustment.NewHandler(adjustmentService, logger), hrOnly)
		attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService, logger), hrOnly)
		leave.RegisterRoutes(api, leave.NewHandler(leaveService, logger), hrOnly)
		loan.RegisterRoutes(api, loan.NewHandler(loanService, logger), hrOnly)
		project.RegisterRoutes(api, project.NewHandler(projectService, logger))
		payroll.RegisterRoutes(api, payroll.NewHandler(payrollService, logger), payrollGuard, rdb)
	}
}
