// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/studymatch/internal/app/features/authgoogle"
	chatfeature "github.com/dalemusser/studymatch/internal/app/features/chat"
	groupsfeature "github.com/dalemusser/studymatch/internal/app/features/groups"
	healthfeature "github.com/dalemusser/studymatch/internal/app/features/health"
	insightsfeature "github.com/dalemusser/studymatch/internal/app/features/insights"
	logoutfeature "github.com/dalemusser/studymatch/internal/app/features/logout"
	matchesfeature "github.com/dalemusser/studymatch/internal/app/features/matches"
	profilefeature "github.com/dalemusser/studymatch/internal/app/features/profile"
	statsfeature "github.com/dalemusser/studymatch/internal/app/features/stats"
	"github.com/dalemusser/studymatch/internal/app/insight"
	roomstore "github.com/dalemusser/studymatch/internal/app/store/chatrooms"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	insightstore "github.com/dalemusser/studymatch/internal/app/store/insights"
	messagestore "github.com/dalemusser/studymatch/internal/app/store/messages"
	"github.com/dalemusser/studymatch/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/wstoken"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. StudyMatch applies session middleware
// and mounts the JSON API feature routers: auth, profile, matching, stats,
// insights, groups, and chat.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores shared across features.
	users := userstore.New(deps.MongoDatabase)
	groups := groupstore.New(deps.MongoDatabase)
	rooms := roomstore.New(deps.MongoDatabase)
	messages := messagestore.New(deps.MongoDatabase)
	insights := insightstore.New(deps.MongoDatabase)
	states := oauthstate.New(deps.MongoDatabase)

	// Fresh user data is loaded on every request so profile updates take
	// effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users))

	tokens, err := wstoken.NewIssuer(appCfg.WSTokenKey)
	if err != nil {
		logger.Error("ws token issuer init failed", zap.Error(err))
		return nil, err
	}

	insightSvc := insight.NewService(users, groups, insights, logger)
	hub := chatfeature.NewHub(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, users, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(
		users, states, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.FrontendURL,
		logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/auth/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Account and profile
	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/api/user", profilefeature.Routes(profileHandler, sessionMgr))

	// Matching and population statistics
	matchesHandler := matchesfeature.NewHandler(users, logger)
	r.Mount("/api/match", matchesfeature.Routes(matchesHandler, sessionMgr))

	statsHandler := statsfeature.NewHandler(users, groups, logger)
	r.Mount("/api/stats", statsfeature.Routes(statsHandler, sessionMgr))

	// Daily insights
	insightsHandler := insightsfeature.NewHandler(insightSvc, logger)
	r.Mount("/api/insight", insightsfeature.Routes(insightsHandler, sessionMgr))

	// Groups
	groupsHandler := groupsfeature.NewHandler(groups, users, logger)
	r.Mount("/api/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Chat
	chatHandler := chatfeature.NewHandler(rooms, messages, groups, tokens, hub, logger)
	r.Mount("/api/chat", chatfeature.Routes(chatHandler, sessionMgr))

	return r, nil
}
