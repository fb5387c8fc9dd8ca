package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/modules/account"
	"github.com/JhonRainbow6/WebProject/modules/gaming"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/cheapshark"
	"github.com/JhonRainbow6/WebProject/pkg/config"
	"github.com/JhonRainbow6/WebProject/pkg/email"
	"github.com/JhonRainbow6/WebProject/pkg/environment"
	"github.com/JhonRainbow6/WebProject/pkg/file"
	"github.com/JhonRainbow6/WebProject/pkg/httpserver"
	"github.com/JhonRainbow6/WebProject/pkg/jwt"
	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
	"github.com/JhonRainbow6/WebProject/pkg/mongo"
	"github.com/JhonRainbow6/WebProject/pkg/newsapi"
	"github.com/JhonRainbow6/WebProject/pkg/redis"
	"github.com/JhonRainbow6/WebProject/pkg/requestid"
	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

func run(ctx context.Context) error {
	var cfg AppConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)

	mongoClient, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()

	users := mongo.NewUserStorage(mongoClient.Database(cfg.Mongo.Database))
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	checks := []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(mongoClient)}}

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	var once auth.OnceStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
		once = redis.NewOnceStore(redisClient, cfg.Redis.KeyPrefix)
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(redisClient)})
	} else {
		log.Warn("REDIS_URL not set, one-time codes are kept in memory", logger.Component("server"))
		once = auth.NewMemoryOnceStore(cfg.OnceCapacity, max(cfg.Google.StateTTL, cfg.Account.ExchangeCodeTTL))
	}
	once = meteredOnceStore{next: once, metrics: m}

	files, err := file.NewFromConfig(ctx, cfg.Files)
	if err != nil {
		return err
	}

	sender, err := email.New(cfg.Email, log)
	if err != nil {
		return err
	}
	notifier := email.NewNotifier(sender, cfg.Email, cfg.Account.FrontendURL)

	opts, err := buildRoutes(cfg, log, users, once, files, notifier, m)
	if err != nil {
		return err
	}

	rt := routes{
		log:          log,
		env:          env,
		cors:         cfg.CORS,
		registry:     registry,
		metrics:      m,
		checks:       checks,
		readyTimeout: cfg.ReadyTimeout,
		account:      opts.account,
		gaming:       opts.gaming,
	}
	if local, ok := files.(*file.LocalStorage); ok {
		rt.uploadsDir, rt.uploadsURL = local.Dir(), cfg.Files.LocalURL
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(rt))
}

type moduleOptions struct {
	account account.RouterOptions
	gaming  gaming.RouterOptions
}

// buildRoutes wires the services of both modules.
func buildRoutes(
	cfg AppConfig,
	log *slog.Logger,
	users auth.Storage,
	once auth.OnceStore,
	files file.Storage,
	notifier *email.Notifier,
	m *metrics.Metrics,
) (moduleOptions, error) {
	jwtService, err := jwt.NewFromString(cfg.Account.JWTSecret,
		jwt.WithTTL(cfg.Account.JWTTTL),
		jwt.WithIssuer(cfg.Account.JWTIssuer),
	)
	if err != nil {
		return moduleOptions{}, err
	}
	tokens := auth.NewJWTTokens(jwtService)
	errorHandler := handler.NewErrorHandler(log)

	accounts := auth.NewAccountService(users, auth.NewBcryptHasher(cfg.Account.BcryptCost), tokens,
		auth.WithAccountLogger(log),
		auth.WithAfterRegister(account.WelcomeNotice(notifier)),
		auth.WithAfterPasswordChange(account.PasswordChangedNotice(notifier)),
	)
	resolver := auth.NewResolver(users,
		auth.WithResolverLogger(log),
		auth.WithAfterLink(account.ProviderLinkedNotice(notifier)),
	)
	codes := auth.NewExchangeCodes(once, cfg.Account.ExchangeCodeTTL)

	passwordOpts := []account.PasswordOption{
		account.WithMaxImageSize(cfg.Files.MaxImageSize),
		account.WithPasswordMetrics(m),
		account.WithPasswordLogger(log),
	}
	if cfg.Account.RedirectMode == account.RedirectModeCode {
		passwordOpts = append(passwordOpts, account.WithExchangeCodes(codes))
	}

	googleLogin := auth.NewGoogleLogin(auth.NewGoogleAdapter(cfg.Google), once, resolver, accounts,
		auth.WithStateTTL(cfg.Google.StateTTL),
		auth.WithGoogleLoginLogger(log),
	)

	steamClient := steam.NewClient(cfg.Steam)
	openID := steam.NewOpenID(cfg.Steam, cfg.Account.BackendURL)
	linker := auth.NewSteamLinker(tokens, account.NewSteamProvider(openID, steamClient, m), resolver, cfg.Account.SteamCallbackURL(),
		auth.WithSteamLinkerLogger(log),
	)

	return moduleOptions{
		account: account.RouterOptions{
			Password:    account.NewPasswordService(accounts, tokens, files, errorHandler, passwordOpts...),
			GoogleOAuth: account.NewGoogleService(cfg.Account, googleLogin, codes, errorHandler, account.WithGoogleMetrics(m), account.WithGoogleLogger(log)),
			Steam:       account.NewSteamService(cfg.Account, linker, m, errorHandler),
		},
		gaming: gaming.RouterOptions{
			Steam: gaming.NewSteamService(accounts, steamClient, tokens, m, errorHandler),
			Deals: gaming.NewDealsService(cheapshark.NewClient(cfg.CheapShark), m, errorHandler),
			News:  gaming.NewNewsService(newsapi.NewClient(cfg.News), m, errorHandler),
		},
	}, nil
}
