package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/config"
	"github.com/eazydocs/eazydocs-backend/internal/infrastructure/identity"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
	"github.com/eazydocs/eazydocs-backend/pkg/mailer"
)

// app-level container to share constructed components across packages.
// Everything here is set once during startup and read-only afterwards;
// the router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	tokenManager  *helpers.TokenManager
	cookieManager *helpers.CookieManager

	provider      identity.Provider
	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetPGPool(p *pgxpool.Pool)             { pgPool = p }
func GetPGPool() *pgxpool.Pool              { return pgPool }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetGCS(s *storage.Client)              { gcsClient = s }
func GetGCS() *storage.Client               { return gcsClient }
func SetTokens(m *helpers.TokenManager)     { tokenManager = m }
func GetTokens() *helpers.TokenManager      { return tokenManager }
func SetCookies(m *helpers.CookieManager)   { cookieManager = m }
func GetCookies() *helpers.CookieManager    { return cookieManager }
func SetProvider(p identity.Provider)       { provider = p }
func GetProvider() identity.Provider        { return provider }
func SetMailgun(m *mailer.Mailgun)          { mailgunClient = m }
func GetMailgun() *mailer.Mailgun           { return mailgunClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)         { esClient = c }
func GetES() *elasticsearch.Client          { return esClient }
