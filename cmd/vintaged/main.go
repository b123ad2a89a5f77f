// Command vintaged runs the classic-protocol voxel server: it loads
// configuration, opens or generates a world, and serves connections
// until SIGINT/SIGTERM requests an orderly shutdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vintagecraft/vintage/internal/actor"
	"github.com/vintagecraft/vintage/internal/config"
	"github.com/vintagecraft/vintage/internal/session"
	"github.com/vintagecraft/vintage/internal/world"
	"github.com/vintagecraft/vintage/internal/worldgen"
)

func main() {
	var (
		configPath = flag.String("config", "./vintage.yaml", "path to the YAML config file")
		listenAddr = flag.String("listen", "", "override the configured listen address")
		worldPath  = flag.String("world", "", "override the configured world save path")
		logLevel   = flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
		generator  = flag.String("generator", "flat", "world generator to use when no save file exists (flat, superflat)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "vintaged: load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *worldPath != "" {
		cfg.WorldPath = *worldPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("unrecognised log level, defaulting to info")
	}

	gen, err := selectGenerator(*generator)
	if err != nil {
		log.WithError(err).Fatal("invalid generator")
	}

	dims := world.Dims{X: cfg.WorldX, Y: cfg.WorldY, Z: cfg.WorldZ}
	bw := world.NewOrLoad(cfg.WorldPath, dims, gen)

	wa := actor.New(actor.Config{
		ServerName:   cfg.ServerName,
		MOTD:         cfg.MOTD,
		Spawn:        actor.Position{X: cfg.Spawn.X, Y: cfg.Spawn.Y, Z: cfg.Spawn.Z},
		SpawnRot:     actor.Rotation{Yaw: cfg.SpawnRot.Yaw, Pitch: cfg.SpawnRot.Pitch},
		SavePath:     cfg.WorldPath,
		SaveInterval: cfg.SaveInterval(),
	}, bw, log.WithField("component", "actor"))

	events := make(chan actor.Event, 32)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go runTicker(ctx, events)
	actorDone := make(chan struct{})
	go func() {
		wa.Run(ctx, events)
		close(actorDone)
	}()

	srv := &session.Server{
		ListenAddr: cfg.ListenAddr,
		Events:     events,
		Log:        log.WithField("component", "server"),
	}
	if err := srv.ListenAndServe(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	// Wait for the actor's final save before exiting.
	<-actorDone
}

// runTicker emits a TickEvent every second, driving the WorldActor's
// periodic save.
func runTicker(ctx context.Context, events chan<- actor.Event) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			select {
			case events <- actor.TickEvent{}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func selectGenerator(name string) (world.Generator, error) {
	switch name {
	case "flat":
		return worldgen.Flat, nil
	case "superflat":
		return worldgen.Superflat([]world.Block{
			world.Bedrock, world.Dirt, world.Dirt, world.Grass,
		}), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", name)
	}
}
