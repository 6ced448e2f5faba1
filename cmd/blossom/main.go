// Package main provides the blossom binary: a terminal client for the
// Blossom community API sharing the same session core as the mobile app.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blossomapp/client/api/client"
	"github.com/blossomapp/client/internal/config"
	"github.com/blossomapp/client/internal/guard"
	"github.com/blossomapp/client/internal/keeper"
	"github.com/blossomapp/client/internal/keystore"
	"github.com/blossomapp/client/internal/session"
	"github.com/blossomapp/client/pkg/logger"
)

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	keys    keystore.Store
	api     *client.Client
	session *session.Store
	keeper  *keeper.Keeper
	nav     *routeState
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("logger error: %w", err)
	}

	keys, err := keystore.Open(cfg.Keystore)
	if err != nil {
		return nil, fmt.Errorf("keystore error: %w", err)
	}

	apiClient := client.New(client.Config{
		BaseURL:        cfg.API.BaseURL,
		Prefix:         cfg.API.Prefix,
		RequestTimeout: cfg.API.RequestTimeout,
		UserAgent:      cfg.API.UserAgent,
	}, keys, zapLogger)

	sess := session.New(keys, apiClient, zapLogger)

	nav := newRouteState(cfg.Guard.Landing)
	g := guard.New(guard.Routes{
		Landing: cfg.Guard.Landing,
		Home:    cfg.Guard.Home,
	}, nav, zapLogger)
	g.Attach(sess, nav.Segments)

	a := &app{
		cfg:     cfg,
		logger:  zapLogger,
		keys:    keys,
		api:     apiClient,
		session: sess,
		nav:     nav,
	}

	if cfg.Keeper.Enabled {
		a.keeper = keeper.New(sess, cfg.Keeper.Interval, zapLogger)
		a.keeper.Start()
	}

	return a, nil
}

func (a *app) close() {
	if a.keeper != nil {
		a.keeper.Stop()
	}
	if err := a.keys.Close(); err != nil {
		a.logger.Warn("keystore close failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// routeState is the CLI's stand-in for the mobile router: it keeps a current
// route and satisfies guard.Navigator by replacing it.
type routeState struct {
	mu    sync.Mutex
	route string
}

func newRouteState(initial string) *routeState {
	return &routeState{route: initial}
}

func (r *routeState) Replace(route string) {
	r.mu.Lock()
	r.route = route
	r.mu.Unlock()
}

func (r *routeState) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

func (r *routeState) Segments() []string {
	current := strings.Trim(r.Current(), "/")
	if current == "" {
		return nil
	}
	return strings.Split(current, "/")
}

func main() {
	a, err := newApp()
	if err != nil {
		log.Fatalf("blossom: %v", err)
	}
	defer a.close()

	root := &cobra.Command{
		Use:           "blossom",
		Short:         "Blossom community client",
		Long:          "Terminal client for the Blossom pregnancy and postpartum community.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newResolveCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newOAuthCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newFeedCmd(a),
		newForumsCmd(a),
		newGroupsCmd(a),
		newMilestonesCmd(a),
		newResourcesCmd(a),
		newPremiumCmd(a),
		newMessagesCmd(a),
		newSearchCmd(a),
		newProfileCmd(a),
		newNotificationsCmd(a),
		newGalleryCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blossom: %v\n", err)
		os.Exit(1)
	}
}
