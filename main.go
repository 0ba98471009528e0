package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apirest "github.com/kasuganosora/battlerewards/api/rest"
	"github.com/kasuganosora/battlerewards/cache"
	"github.com/kasuganosora/battlerewards/config"
	"github.com/kasuganosora/battlerewards/game/battle"
	"github.com/kasuganosora/battlerewards/game/reward"
	"github.com/kasuganosora/battlerewards/host"
	mw "github.com/kasuganosora/battlerewards/middleware"
	"github.com/kasuganosora/battlerewards/plugin/hook"
	"github.com/kasuganosora/battlerewards/scheduler"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	mgr := config.NewManager(cfgPath, nil)
	if err := mgr.Load(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg := mgr.Current()

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Server.AdminKey == "" {
		logger.Warn("server.admin_key is not set; admin endpoints are disabled")
	}

	// ---- Cooldown store ----
	store, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	defer store.Close()
	logger.Info("cooldown store initialized", zap.String("mode", cfg.Cache.Mode))

	// ---- Rule catalog ----
	rules := reward.NewStore()
	rules.Replace(cfg.BuildRules(logger))

	// ---- Reward pipeline ----
	ledger := reward.NewLedger(store, logger)
	delivery := reward.NewDelivery(ledger, hostCommandExecutor(), func() string {
		return mgr.Current().Rewards.InventoryFullBehavior
	}, logger)
	engine := reward.NewEngine(reward.EngineConfig{
		Store:    rules,
		Delivery: delivery,
		Logger:   logger,
	})

	// ---- Battle tracker ----
	tracker := battle.NewTracker(battle.TrackerConfig{
		Engine: engine,
		Logger: logger,
	})
	// The host engine drives hc.Trigger with battle events.
	hc := hook.NewCenter()
	tracker.RegisterHooks(hc)

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()
	sched.AddTicker("battle_sweep", time.Second, tracker.Sweep)

	// ---- Admin HTTP server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(mw.RequestLogger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	adminH := apirest.NewAdminHandler(mgr, rules, tracker, nil, logger)
	api := r.Group("/api")
	{
		api.GET("/version", adminH.Version)

		adminG := api.Group("/admin")
		adminG.Use(apirest.AdminAuth(cfg.Server.AdminKey))
		adminG.POST("/reload", adminH.Reload)
		adminG.GET("/rewards", adminH.ListRewards)
		adminG.GET("/conditions", adminH.ListConditions)
		adminG.GET("/stats", adminH.Stats)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("admin server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// hostCommandExecutor returns the command executor provided by the host
// platform. The standalone binary has no host, so commands are logged
// and discarded.
func hostCommandExecutor() host.CommandExecutor {
	return noopExecutor{}
}

type noopExecutor struct{}

func (noopExecutor) Execute(command string, player host.Player) error {
	log.Printf("no host command dispatcher attached, dropping: %s (as %s)", command, player.Name())
	return nil
}
