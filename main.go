package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/arpgcore/api/debug"
	"github.com/kasuganosora/arpgcore/config"
	"github.com/kasuganosora/arpgcore/game/event"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/minimap"
	"github.com/kasuganosora/arpgcore/game/sim"
	"github.com/kasuganosora/arpgcore/resource"
	"github.com/kasuganosora/arpgcore/scheduler"
	"go.uber.org/zap"
)

const (
	wanderTurnSeconds = 4.0
	wanderHomeRadius  = 150.0
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	content, err := resource.NewLoader(cfg.Game.ContentDir, logger).Load()
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}

	store := sim.NewSnapshotStore()
	session, err := sim.NewSession(cfg, content, logger, sim.WithStore(store))
	if err != nil {
		return err
	}
	logEvents(session.Bus, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(logger)
	defer sched.Stop()

	var w *wanderer
	if cfg.Game.Wander {
		w = newWanderer(cfg.Game.Seed)
	}
	sched.AddTicker("frame", time.Duration(cfg.Game.TickMs)*time.Millisecond, func(dt float64) {
		if w != nil {
			w.steer(session, dt)
		}
		session.Update(dt)
	})
	if cfg.Server.RunSeconds > 0 {
		sched.AddDelay("shutdown", time.Duration(cfg.Server.RunSeconds)*time.Second, scheduler.TaskFn(stop))
	}

	var srv *debug.Server
	if cfg.Server.DebugPort > 0 {
		if !cfg.Server.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
		mm := minimap.New(session.Heights, session.Zones, minimap.DefaultOptions())
		h := debug.NewHandler(store, mm, logger)
		srv, err = debug.Listen(fmt.Sprintf(":%d", cfg.Server.DebugPort), debug.NewRouter(h, cfg.Security, logger), logger)
		if err != nil {
			return err
		}
		srv.Start()
	}

	logger.Info("simulation running",
		zap.String("session_id", session.ID),
		zap.Int("tick_ms", cfg.Game.TickMs),
		zap.Bool("auto_battle", cfg.Game.AutoBattle))
	<-ctx.Done()

	sched.Remove("frame")
	if srv != nil {
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Warn("debug server shutdown", zap.Error(err))
		}
	}
	if snap, ok := store.Latest(); ok {
		logger.Info("simulation stopped",
			zap.Uint64("frames", snap.Frame),
			zap.Float64("elapsed_s", snap.Elapsed),
			zap.Int("kills", snap.Kills),
			zap.Int("level", snap.Player.Level),
			zap.Int("gold", snap.Player.Gold))
	}
	return nil
}

// logEvents reports the milestones of a headless run.
func logEvents(bus *event.Bus, logger *zap.Logger) {
	bus.Subscribe(event.KindLevelUp, func(e event.Event) {
		lu := e.(event.LevelUp)
		logger.Info("level up", zap.Int("level", lu.NewLevel), zap.Int("levels", lu.Levels))
	})
	bus.Subscribe(event.KindPlayerDied, func(e event.Event) {
		logger.Info("player died", zap.Float64("x", e.(event.PlayerDied).Position.X))
	})
	bus.Subscribe(event.KindPlayerRespawned, func(event.Event) {
		logger.Info("player respawned")
	})
}

// wanderer steers a headless player: a new random heading every few
// seconds, turning home once it strays too far.
type wanderer struct {
	rng   *rand.Rand
	timer float64
}

func newWanderer(seed int64) *wanderer {
	return &wanderer{rng: rand.New(rand.NewSource(seed ^ 0x5eed))}
}

func (w *wanderer) steer(s *sim.Session, dt float64) {
	w.timer -= dt
	if w.timer > 0 {
		return
	}
	w.timer = wanderTurnSeconds
	pos := s.Player.Position()
	if pos.Len() > wanderHomeRadius {
		s.Combat.SetMove(pos.Scale(-1))
		return
	}
	s.Combat.SetMove(geom.FromAngle(w.rng.Float64() * 2 * math.Pi))
}
