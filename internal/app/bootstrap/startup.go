// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/studymatch/internal/app/insight"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	insightstore "github.com/dalemusser/studymatch/internal/app/store/insights"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// refresher is started here and stopped in Shutdown.
var refresher *tasks.InsightRefresher

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// StudyMatch starts the nightly insight refresh here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.InsightRefreshSpec == "" {
		logger.Info("insight refresh disabled")
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	svc := insight.NewService(
		users,
		groupstore.New(deps.MongoDatabase),
		insightstore.New(deps.MongoDatabase),
		logger,
	)

	refresher = tasks.NewInsightRefresher(users, svc, appCfg.InsightRefreshSpec, logger)
	return refresher.Start()
}
