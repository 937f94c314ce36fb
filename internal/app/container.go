package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/Ishikapathar/Online-Exam-Management/internal/config"
	httpx "github.com/Ishikapathar/Online-Exam-Management/internal/http"
	"github.com/Ishikapathar/Online-Exam-Management/internal/http/handlers"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/audit"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/auth"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/database"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/notifications"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/repositories"
	"github.com/Ishikapathar/Online-Exam-Management/internal/services"
)

// Deps are resources created outside the container. Nil fields are built from Config
// and closed by Container.Close; provided ones are left to the caller.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Dispatcher domain.OTPDispatcher
	Now        func() time.Time
}

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo      domain.UserRepository
	StudentRepo   domain.StudentRepository
	SubjectRepo   domain.SubjectRepository
	ExamRepo      domain.ExamRepository
	ResultRepo    domain.ResultRepository
	AnalyticsRepo domain.AnalyticsRepository

	// Services
	PasswordSvc domain.PasswordService
	OTPSvc      domain.OTPService
	Dispatcher  domain.OTPDispatcher
	AuditLog    domain.AuditLogger
	AuthSvc     domain.AuthService

	Router *gin.Engine

	ownsDB    bool
	ownsRedis bool
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, deps Deps) (*Container, error) {
	container := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          deps.DB,
		RedisClient: deps.Redis,
		Dispatcher:  deps.Dispatcher,
	}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(ctx); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	if err := container.initServices(deps.Now); err != nil {
		container.Close()
		return nil, err
	}

	container.initRouter()
	return container, nil
}

func (c *Container) initDatabase() error {
	if c.DB == nil {
		db, err := database.Open(c.Config.DBDriver, c.Config.DSN, c.Config.DBLogLevel)
		if err != nil {
			return err
		}
		c.DB = db
		c.ownsDB = true
	}

	return database.AutoMigrate(c.DB)
}

func (c *Container) initRedis(ctx context.Context) error {
	if c.RedisClient != nil || !c.Config.RedisEnabled {
		return nil
	}

	client := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return err
	}
	c.RedisClient = client.Client
	c.ownsRedis = true
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	if c.RedisClient != nil {
		c.UserRepo = repositories.NewCachedUserRepository(c.UserRepo, c.RedisClient, c.Config.UserCacheTTL, c.Logger)
	}

	c.StudentRepo = repositories.NewStudentRepository(c.DB)
	c.SubjectRepo = repositories.NewSubjectRepository(c.DB)
	c.ExamRepo = repositories.NewExamRepository(c.DB)
	c.ResultRepo = repositories.NewResultRepository(c.DB)
	c.AnalyticsRepo = repositories.NewAnalyticsRepository(c.DB)
}

func (c *Container) initServices(now func() time.Time) error {
	c.PasswordSvc = auth.NewPasswordService()

	otpConfig := services.OTPConfig{
		Length: c.Config.OTP_Length,
		TTL:    c.Config.OTP_TTL,
	}
	if now != nil {
		c.OTPSvc = services.NewOTPServiceWithClock(otpConfig, now)
	} else {
		c.OTPSvc = services.NewOTPService(otpConfig)
	}

	if c.Dispatcher == nil {
		dispatcher, err := notifications.NewDispatcher(notifications.Settings{
			Driver:  c.Config.NotifyDriver,
			AppName: c.Config.AppName,
			TTL:     c.OTPSvc.TTL(),
			SMTP: notifications.SMTPSettings{
				Host:      c.Config.SMTPHost,
				Port:      c.Config.SMTPPort,
				Username:  c.Config.SMTPUsername,
				Password:  c.Config.SMTPPassword,
				From:      c.Config.SMTPFrom,
				TLSPolicy: c.Config.SMTPTLSPolicy,
			},
			TwilioAccountSID:       c.Config.TwilioSID,
			TwilioAuthToken:        c.Config.TwilioToken,
			TwilioVerifyServiceSID: c.Config.TwilioVerifySID,
		}, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to create otp dispatcher: %w", err)
		}
		c.Dispatcher = dispatcher
	}

	c.AuditLog = audit.NewAuditLogger(c.Logger)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.OTPSvc,
		c.Dispatcher,
		c.AuditLog,
	)

	return nil
}

func (c *Container) initRouter() {
	c.Router = httpx.BuildRouter(httpx.Handlers{
		Auth:      handlers.NewAuthHandlers(c.AuthSvc),
		Students:  handlers.NewStudentHandlers(c.StudentRepo),
		Subjects:  handlers.NewSubjectHandlers(c.SubjectRepo),
		Exams:     handlers.NewExamHandlers(c.ExamRepo),
		Results:   handlers.NewResultHandlers(c.ResultRepo),
		Analytics: handlers.NewAnalyticsHandlers(c.AnalyticsRepo),
	}, c.Logger, c.Config.CORSOrigins)
}

// Close closes the connections the container opened itself
func (c *Container) Close() error {
	if c.ownsRedis && c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.ownsDB && c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
