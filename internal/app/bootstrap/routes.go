// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	activityfeature "github.com/filehaven/filehaven/internal/app/features/activity"
	errorsfeature "github.com/filehaven/filehaven/internal/app/features/errors"
	favoritesfeature "github.com/filehaven/filehaven/internal/app/features/favorites"
	filesfeature "github.com/filehaven/filehaven/internal/app/features/files"
	healthfeature "github.com/filehaven/filehaven/internal/app/features/health"
	identityfeature "github.com/filehaven/filehaven/internal/app/features/identity"
	userinfofeature "github.com/filehaven/filehaven/internal/app/features/userinfo"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed, so the service singletons from
// Startup are ready to mount.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMetrics.CountRequests)

	// Global auth middleware: attaches the caller's credential token to
	// the request context. Authorization happens in the service layer.
	r.Use(auth.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", appMetrics.Handler())

	// File API
	filesHandler := filesfeature.NewHandler(appService, errLog, logger)
	r.Mount("/api/files", filesfeature.Routes(filesHandler))

	favoritesHandler := favoritesfeature.NewHandler(appService, errLog, logger)
	r.Mount("/api/favorites", favoritesfeature.Routes(favoritesHandler))

	activityHandler := activityfeature.NewHandler(appService, errLog, logger)
	r.Mount("/api/audit", activityfeature.Routes(activityHandler))

	identityHandler := identityfeature.NewHandler(appService, errLog, logger, appCfg.IdentityWebhookToken)
	r.Mount("/api/identity", identityfeature.Routes(identityHandler))

	meHandler := userinfofeature.NewHandler(appService, errLog, logger)
	r.Mount("/api/me", userinfofeature.Routes(meHandler))

	return r, nil
}
