package router

import (
	"github.com/eazydocs/eazydocs-backend/internal/application"
	"github.com/eazydocs/eazydocs-backend/internal/container"
	"github.com/eazydocs/eazydocs-backend/internal/infrastructure/cache"
	"github.com/eazydocs/eazydocs-backend/internal/infrastructure/postgres"
	handlers "github.com/eazydocs/eazydocs-backend/internal/interface/http"
	"github.com/eazydocs/eazydocs-backend/internal/router/modules"
)

// InitModules builds services and handlers from the container singletons
// and registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := postgres.NewUserRepository(container.GetPGPool())
	blogRepo := postgres.NewBlogRepository(container.GetPGPool())

	// keep the interface nil when the publisher is absent
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	userSvc := &application.UserService{
		Repo:         userRepo,
		Provider:     container.GetProvider(),
		Tokens:       container.GetTokens(),
		GCS:          container.GetGCS(),
		GCSBucket:    cfg.GCSBucket,
		Pub:          pub,
		Logger:       container.GetLogger(),
		ES:           container.GetES(),
		ESUsersIndex: cfg.ESUsersIndex,
		MailEnabled:  cfg.MailSendEnabled,
	}
	blogSvc := &application.BlogService{
		Repo:      blogRepo,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Logger:    container.GetLogger(),
	}
	otpSvc := &application.OTPService{
		Users:  userRepo,
		Codes:  cache.NewOTPStore(container.GetRedis()),
		Mail:   container.GetMailgun(),
		TTL:    cfg.OTPTTL,
		Logger: container.GetLogger(),
	}

	authHandler := handlers.NewAuthHandler(userSvc, container.GetCookies(), container.GetLogger())
	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	blogHandler := handlers.NewBlogHandler(blogSvc, container.GetLogger())
	otpHandler := handlers.NewOTPHandler(otpSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, container.GetTokens()))
	r.Add(modules.NewUserModule(userHandler, container.GetTokens()))
	r.Add(modules.NewBlogModule(blogHandler))
	r.Add(modules.NewOTPModule(otpHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
