package deps

import (
	"context"
	"fullauth/internal/config"
	"fullauth/internal/core/domain/events"
	dl "fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/mail"
	drl "fullauth/internal/core/domain/rate_limiter"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	"fullauth/internal/db"
	dbtoken "fullauth/internal/db/token"
	dbuser "fullauth/internal/db/user"
	"fullauth/internal/implementations/email"
	"fullauth/internal/implementations/logging"
	"fullauth/internal/implementations/metrics"
	passwordhasher "fullauth/internal/implementations/password_hasher"
	ratelimiter "fullauth/internal/implementations/rate_limiter"
	tokengenerator "fullauth/internal/implementations/token_generator"
	"fullauth/internal/rabbitmq"
	securityevents "fullauth/internal/rabbitmq/publishers/security_events"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UserRepository  user.UserRepository
	TokenRepository token.Repository

	RateLimiter drl.RateLimiter
	ServiceRuns *metrics.ServiceRuns

	EmailSender    mail.Sender
	TokenGenerator token.Generator
	PasswordHasher user.PasswordHasher
	EventPublisher events.Publisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeEventPublisher := deps.initEventPublisher()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.TokenRepository = dbtoken.NewPgxRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.ServiceRuns = metrics.NewServiceRuns(prometheus.DefaultRegisterer)
	deps.EmailSender = deps.initEmailSender()
	deps.TokenGenerator = tokengenerator.NewUUID()
	deps.PasswordHasher = passwordhasher.NewArgon2id(
		deps.Config.PasswordSecret,
		passwordhasher.Params{
			MemoryKiB:   deps.Config.Argon2MemoryKiB,
			Iterations:  deps.Config.Argon2Iterations,
			Parallelism: deps.Config.Argon2Parallelism,
		},
	)

	return deps, func() {
		closeFuncs := []func(){
			closeEventPublisher,
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(!deps.Config.IsProduction())
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	ctx := context.Background()
	if err := db.ApplyMigrations(deps.Config.PostgresqlURL, deps.Config.MigrationsPath); err != nil {
		deps.Logger.Error(ctx, "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}

	pool, err := pgxpool.Connect(ctx, deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(ctx, "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(ctx, "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	ctx := context.Background()
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(ctx, "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(ctx, "Redis client shut down.")
	}
}

func (deps *Deps) initEventPublisher() func() {
	ctx := context.Background()
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(ctx, "RabbitMQ is disabled, security events will not be published.")
		deps.EventPublisher = events.NewNopPublisher()
		return func() {}
	}

	connection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = connection

	channel, err := connection.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := channel.DeclareTopicExchange(deps.Config.RabbitmqSecurityExchange); err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	deps.EventPublisher = securityevents.NewRabbitMQ(deps.Logger, channel, deps.Config.RabbitmqSecurityExchange)

	return func() {
		deps.Logger.Info(ctx, "Shutting down RabbitMQ connection.")
		channel.Close()
		connection.Close()
		deps.Logger.Info(ctx, "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initEmailSender() mail.Sender {
	switch deps.Config.MailTransport {
	case config.MailTransportSES:
		return email.NewSESSender(deps.initAwsConfig(), deps.Config.MailFrom)
	case config.MailTransportResend:
		return email.NewResendSender(deps.Config.ResendAPIKey, deps.Config.MailFrom)
	default:
		return email.NewLogSender(deps.Logger)
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}
