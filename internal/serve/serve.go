package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/registry"
	"github.com/betpay/betpay-wallet/internal/scheduler"
	"github.com/betpay/betpay-wallet/internal/scheduler/jobs"
	"github.com/betpay/betpay-wallet/internal/serve/httperror"
	"github.com/betpay/betpay-wallet/internal/serve/httphandler"
	"github.com/betpay/betpay-wallet/internal/serve/middleware"
	"github.com/betpay/betpay-wallet/internal/services"
)

const ServiceID = "serve"

type HTTPServerInterface interface {
	Run(conf supporthttp.Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf supporthttp.Config) {
	supporthttp.Run(conf)
}

type ServeOptions struct {
	Environment        string
	GitCommit          string
	Port               int
	Version            string
	MonitorService     monitor.MonitorServiceInterface
	CrashTrackerClient crashtracker.CrashTrackerClient
	CorsAllowedOrigins []string
	APIBaseURL         string
	// APIToken is used when a request doesn't carry its own bearer token.
	APIToken           string
	CatalogCacheTTL    time.Duration
	SessionTTL         time.Duration
	MaxSessions        int
	RateLimitPerMinute int
	// EnableScheduler refreshes the catalog cache in the background before it expires.
	EnableScheduler bool

	apiClient betapi.ClientInterface
	registry  registry.RegistryInterface
	refresher jobs.CatalogRefresher
	sessions  services.SessionStore
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *ServeOptions) SetupDependencies() error {
	// Setup crash tracker:
	// Call crash tracker FlushEvents to flush buffered events before the server terminates
	defer opts.CrashTrackerClient.FlushEvents(2 * time.Second)
	// Call crash tracker Recover for recover from unhandled panics
	defer opts.CrashTrackerClient.Recover()
	// Set crash tracker LogAndReportErrors as DefaultReportErrorFunc
	httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)

	// Setup remote API client
	apiClient, err := betapi.NewClient(betapi.ClientOptions{
		BaseURL:        opts.APIBaseURL,
		Token:          opts.APIToken,
		MonitorService: opts.MonitorService,
	})
	if err != nil {
		return fmt.Errorf("creating remote API client: %w", err)
	}
	opts.apiClient = apiClient
	catalogRegistry := registry.NewRegistry(apiClient, opts.CatalogCacheTTL)
	opts.registry = catalogRegistry
	opts.refresher = catalogRegistry

	// Setup wizard sessions
	sessions, err := services.NewInMemorySessionStore(opts.SessionTTL, opts.MaxSessions, opts.recordSessionExpired)
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	opts.sessions = sessions

	return nil
}

func (opts *ServeOptions) recordSessionExpired(session *services.WizardSession) {
	log.WithField("session_id", session.ID).Debug("Wizard session expired")
	if opts.MonitorService == nil {
		return
	}

	labels := map[string]string{"type": string(session.Coordinator.Wizard().Type())}
	if err := opts.MonitorService.MonitorCounters(monitor.WizardSessionsExpiredTag, labels); err != nil {
		log.Errorf("monitoring counter %s: %v", monitor.WizardSessionsExpiredTag, err)
	}
}

func Serve(opts ServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("error starting dependencies: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.EnableScheduler {
		log.Info("Starting Scheduler Service...")
		go scheduler.StartScheduler(ctx, opts.CrashTrackerClient.Clone(), scheduler.WithCatalogRefreshJobOption(jobs.CatalogRefreshJobOptions{
			Refresher:      opts.refresher,
			CacheTTL:       opts.CatalogCacheTTL,
			MonitorService: opts.MonitorService,
		}))
	} else {
		log.Warn("Scheduler Service is disabled.")
	}

	// Start the server
	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := supporthttp.Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: time.Second * 50,
		ReadTimeout:         time.Second * 5,
		WriteTimeout:        time.Second * 50,
		IdleTimeout:         time.Minute * 2,
		OnStarting: func() {
			log.Info("Starting BetPay Wallet Server")
			log.Infof("Listening on %s", listenAddr)
		},
		OnStopping: func() {
			log.Info("Stopping BetPay Wallet Server")
			cancel()
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o ServeOptions) *chi.Mux {
	mux := chi.NewMux()

	// Middleware
	mux.Use(middleware.CorsMiddleware(o.CorsAllowedOrigins))
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	mux.Use(middleware.MetricsRequestHandler(o.MonitorService))
	if o.RateLimitPerMinute > 0 {
		mux.Use(httprate.LimitByIP(o.RateLimitPerMinute, time.Minute))
	}

	mux.Get("/health", httphandler.HealthHandler{
		ReleaseID: o.GitCommit,
		ServiceID: ServiceID,
		Version:   o.Version,
		Client:    o.apiClient,
	}.ServeHTTP)

	// Routes that call the remote service on behalf of the user
	mux.Group(func(r chi.Router) {
		r.Use(middleware.ForwardTokenMiddleware(o.APIToken))

		sessionHandler := httphandler.SessionHandler{
			Registry:           o.registry,
			Client:             o.apiClient,
			Sessions:           o.sessions,
			CrashTrackerClient: o.CrashTrackerClient,
			MonitorService:     o.MonitorService,
		}

		r.Post("/sessions", sessionHandler.PostSession)
		r.Route(fmt.Sprintf("/sessions/{%s}", middleware.SessionIDURLParam), func(r chi.Router) {
			r.Use(middleware.SessionContextMiddleware)

			r.Get("/", sessionHandler.GetSession)

			r.Put("/platform", sessionHandler.PutPlatform)
			r.Put("/account", sessionHandler.PutAccount)
			r.Put("/network", sessionHandler.PutNetwork)
			r.Put("/phone", sessionHandler.PutPhone)
			r.Put("/amount", sessionHandler.PutAmount)

			r.Post("/forward", sessionHandler.PostForward)
			r.Post("/backward", sessionHandler.PostBackward)
			r.Post("/cancel", sessionHandler.PostCancel)
			r.Post("/confirm", sessionHandler.PostConfirm)

			r.Route("/link", func(r chi.Router) {
				r.Post("/continue", sessionHandler.PostContinueLink)
				r.Post("/cancel", sessionHandler.PostCancelLink)
			})
			r.Route("/ussd", func(r chi.Router) {
				r.Post("/copy", sessionHandler.PostCopyCode)
				r.Post("/dismiss", sessionHandler.PostDismissCode)
			})
		})
	})

	return mux
}
