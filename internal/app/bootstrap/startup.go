// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/filehaven/filehaven/internal/app/blob"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/metrics"
	"github.com/filehaven/filehaven/internal/app/system/workers"
	"go.uber.org/zap"
)

// Shared singletons built during Startup and used by BuildHandler and
// Shutdown. WAFFLE runs the hooks sequentially, so plain package vars
// are safe here.
var (
	appMetrics  *metrics.Metrics
	appService  *library.Service
	purgeWorker *workers.PurgeWorker
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	auth.Init(appCfg.SessionKey, appCfg.SessionBlockKey, coreCfg.Env == "prod")

	// Blob URLs handed to clients are absolute when a base URL is
	// configured, relative otherwise.
	urlPrefix := appCfg.StorageLocalURL
	if appCfg.BaseURL != "" {
		urlPrefix = strings.TrimRight(appCfg.BaseURL, "/") + appCfg.StorageLocalURL
	}
	blobs, err := blob.NewLocal(appCfg.StorageLocalPath, urlPrefix)
	if err != nil {
		return err
	}

	appMetrics = metrics.New()
	appService = library.New(deps.MongoDatabase, blobs, appMetrics, logger)

	purgeWorker = workers.NewPurgeWorker(appService, appCfg.PurgeSchedule, logger)
	return purgeWorker.Start()
}
