package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/stellar/go-stellar-sdk/support/http/mutil"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/authctx"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/serve/httperror"
	"github.com/betpay/betpay-wallet/internal/utils"
)

// SessionIDURLParam is the chi URL parameter holding the wizard session id.
const SessionIDURLParam = "id"

const healthRoute = "/health"

// RecoverHandler is a middleware that recovers from panics and logs the error.
func RecoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}

			// No need to recover when the client has disconnected:
			if errors.Is(err, http.ErrAbortHandler) {
				panic(err)
			}

			httperror.InternalError(req.Context(), "", err, nil).Render(rw)
		}()

		next.ServeHTTP(rw, req)
	})
}

// MetricsRequestHandler is a middleware that monitors http requests, and export the data
// to the metrics server
func MetricsRequestHandler(monitorService monitor.MonitorServiceInterface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			mw := middleware.NewWrapResponseWriter(rw, req.ProtoMajor)
			then := time.Now()
			next.ServeHTTP(mw, req)

			duration := time.Since(then)

			labels := monitor.HTTPRequestLabels{
				Status: fmt.Sprintf("%d", mw.Status()),
				Route:  utils.GetRoutePattern(req),
				Method: req.Method,
			}

			err := monitorService.MonitorHttpRequestDuration(duration, labels)
			if err != nil {
				log.Ctx(req.Context()).Errorf("Error trying to monitor request time: %s", err)
			}
		})
	}
}

// ForwardTokenMiddleware stores the bearer token of the Authorization header in the request
// context so the remote API client can forward it. When fallbackToken is empty the header is
// mandatory.
func ForwardTokenMiddleware(fallbackToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			authHeader := req.Header.Get("Authorization")
			if authHeader == "" {
				if fallbackToken == "" {
					httperror.Unauthorized("", nil, nil).WithErrorCode(httperror.Code401_0).Render(rw)
					return
				}
				next.ServeHTTP(rw, req)
				return
			}

			authHeaderParts := strings.Split(authHeader, " ")
			if len(authHeaderParts) != 2 || !strings.EqualFold(authHeaderParts[0], "Bearer") || authHeaderParts[1] == "" {
				httperror.Unauthorized("", nil, nil).WithErrorCode(httperror.Code401_0).Render(rw)
				return
			}

			ctx := authctx.SetTokenInContext(req.Context(), authHeaderParts[1])
			next.ServeHTTP(rw, req.WithContext(ctx))
		})
	}
}

// SessionContextMiddleware adds the wizard session id of the route to the request context and
// its logger.
func SessionContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, SessionIDURLParam)
		if sessionID == "" {
			next.ServeHTTP(rw, req)
			return
		}

		ctx := authctx.SetSessionIDInContext(req.Context(), sessionID)
		ctx = log.Set(ctx, log.Ctx(ctx).WithField("session_id", sessionID))
		next.ServeHTTP(rw, req.WithContext(ctx))
	})
}

func CorsMiddleware(corsAllowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		cors := cors.New(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedHeaders: []string{"*"},
			AllowedMethods: []string{"GET", "PUT", "POST", "HEAD", "OPTIONS"},
		})

		return cors.Handler(next)
	}
}

// LoggingMiddleware logs one line per request once it's served. Health probes are logged at debug
// level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		mw := mutil.WrapWriter(rw)

		reqCtx := req.Context()
		logCtx := log.Set(reqCtx, log.Ctx(reqCtx).WithFields(log.F{
			"method": req.Method,
			"path":   req.URL.Path,
			"req":    middleware.GetReqID(reqCtx),
		}))
		req = req.WithContext(logCtx)

		started := time.Now()
		next.ServeHTTP(mw, req)

		l := log.Ctx(logCtx).WithFields(log.F{
			"subsys":    "http",
			"ip":        req.RemoteAddr,
			"useragent": req.Header.Get("User-Agent"),
			"status":    mw.Status(),
			"bytes":     mw.BytesWritten(),
			"duration":  time.Since(started),
		})
		route := utils.GetRoutePattern(req)
		l = l.WithField("route", route)

		if route == healthRoute {
			l.Debug("finished request")
			return
		}
		l.Info("finished request")
	})
}
