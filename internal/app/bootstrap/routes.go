// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	campsfeature "github.com/dalemusser/campanion/internal/app/features/camps"
	healthfeature "github.com/dalemusser/campanion/internal/app/features/health"
	loginfeature "github.com/dalemusser/campanion/internal/app/features/login"
	logoutfeature "github.com/dalemusser/campanion/internal/app/features/logout"
	organizersfeature "github.com/dalemusser/campanion/internal/app/features/organizers"
	prefillfeature "github.com/dalemusser/campanion/internal/app/features/prefill"
	userstore "github.com/dalemusser/campanion/internal/app/store/users"
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It builds the session manager and services, then
// mounts the JSON API:
//
//	/health      store ping
//	/login       exchange an ID token for a session cookie
//	/logout      clear the session
//	/me          current user
//	/camps       listings, detail and lifecycle operations
//	/organizers  organizer profiles
//	/extract     pre-fill the camp form from a web page
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// isAdmin is re-read on every request so grants and revocations apply
	// without a new sign-in.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.Users, logger))
	if deps.FirebaseAuth != nil {
		sessionMgr.SetVerifier(auth.NewFirebaseVerifier(deps.FirebaseAuth))
	} else {
		logger.Warn("no firebase_project_id; sign-in is disabled")
	}

	svcs, err := NewServices(context.Background(), appCfg, deps, logger)
	if err != nil {
		logger.Error("service init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	if len(appCfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Global auth middleware: loads SessionUser into context from a bearer
	// token or the session cookie.
	r.Use(sessionMgr.LoadSessionUser)

	var pinger healthfeature.Pinger
	if p := deps.ping(); p != nil {
		pinger = healthfeature.PingFunc(p)
	}
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(pinger, deps.Backend, logger)))

	loginHandler := loginfeature.NewHandler(sessionMgr, deps.Users, logger)
	loginLimit := ratelimit.New(appCfg.LoginRateLimit, time.Minute)
	r.Mount("/login", loginfeature.Routes(loginHandler, loginLimit.Middleware(nil)))
	r.Get("/me", loginHandler.ServeMe)

	r.Mount("/logout", logoutfeature.Routes(logoutfeature.NewHandler(sessionMgr, logger)))

	campsHandler := campsfeature.NewHandler(svcs.Camps, logger)
	r.Mount("/camps", campsfeature.Routes(campsHandler, sessionMgr))

	orgHandler := organizersfeature.NewHandler(svcs.Camps, logger)
	r.Mount("/organizers", organizersfeature.Routes(orgHandler, sessionMgr))

	prefillHandler := prefillfeature.NewHandler(svcs.Extract, logger)
	extractLimit := ratelimit.New(appCfg.ExtractRateLimit, time.Hour)
	r.Mount("/extract", prefillfeature.Routes(prefillHandler, sessionMgr, extractLimit.Middleware(authz.UserID)))

	return r, nil
}
