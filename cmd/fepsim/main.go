// fepsim trains the FEPS episodic memory on a 3x3 grid world and reports
// prediction accuracy, belief states and per-action uncertainty.
//
// Usage:
//
//	fepsim -episodes 100 -steps 20
//	fepsim -config feps.yaml -runs 4 -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/fepslab/feps/config"
	"github.com/fepslab/feps/internal/gridworld"
	"github.com/fepslab/feps/internal/metrics"
	"github.com/fepslab/feps/memory"
	"github.com/fepslab/feps/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		episodes   = flag.Int("episodes", 100, "training episodes per run")
		steps      = flag.Int("steps", 20, "steps per episode")
		runs       = flag.Int("runs", 1, "independent training runs")
		seed       = flag.Int64("seed", 0, "base sampling seed, 0 for time-based")
	)
	flag.Parse()

	cfg, err := config.NewLoader().WithConfigPath(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Memory.Seed = *seed
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg, logger)
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr, reg, logger)
	}

	snapStore, err := buildStore(cfg.Store, logger)
	if err != nil {
		logger.Fatal("snapshot store", zap.Error(err))
	}
	defer snapStore.Close() //nolint:errcheck

	baseSeed := cfg.Memory.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	g, ctx := errgroup.WithContext(context.Background())
	for run := 0; run < *runs; run++ {
		run := run
		g.Go(func() error {
			memCfg := cfg.Memory
			memCfg.Seed = baseSeed + int64(run)
			memCfg.Observer = collector
			return train(ctx, trainParams{
				run:       run,
				episodes:  *episodes,
				steps:     *steps,
				memCfg:    memCfg,
				collector: collector,
				store:     snapStore,
				logger:    logger.With(zap.Int("run", run)),
			})
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
}

type trainParams struct {
	run       int
	episodes  int
	steps     int
	memCfg    memory.Config
	collector *metrics.Collector
	store     store.SnapshotStore
	logger    *zap.Logger
}

func train(ctx context.Context, p trainParams) error {
	mem, err := memory.New(p.memCfg, p.logger)
	if err != nil {
		return err
	}
	mem.Initialize(gridworld.Observations())

	actions := gridworld.Actions()
	rng := rand.New(rand.NewSource(p.memCfg.Seed + 1))

	var totalPredictions, correctPredictions int

	for episode := 0; episode < p.episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		env := gridworld.New()
		obs := env.Observation()
		if err := mem.UpdateBeliefs(obs); err != nil {
			return err
		}

		for step := 0; step < p.steps; step++ {
			action := actions[rng.Intn(len(actions))]

			predicted, ok, err := mem.Predict(action)
			if err != nil {
				return err
			}
			if !ok {
				predicted = ""
			}

			nextObs, _ := env.Step(action)
			if err := mem.ProcessStep(obs, action, nextObs, predicted); err != nil {
				return err
			}

			if ok {
				totalPredictions++
				outcome := metrics.OutcomeIncorrect
				if predicted == nextObs {
					correctPredictions++
					outcome = metrics.OutcomeCorrect
				}
				p.collector.RecordPrediction(outcome)
			} else {
				p.collector.RecordPrediction(metrics.OutcomeNone)
			}
			p.collector.ObserveBeliefSetSize(len(mem.Beliefs()))
			obs = nextObs
		}

		if (episode+1)%10 == 0 {
			logProgress(p, mem, episode+1, totalPredictions, correctPredictions)
		}
	}

	accuracy := 0.0
	if totalPredictions > 0 {
		accuracy = float64(correctPredictions) / float64(totalPredictions)
	}
	p.logger.Info("training complete",
		zap.Int("episodes", p.episodes),
		zap.Int("predictions", totalPredictions),
		zap.Float64("accuracy", accuracy))

	snap, err := mem.Snapshot()
	if err != nil {
		return err
	}
	if err := p.store.Save(ctx, snap); err != nil {
		return err
	}
	p.logger.Info("snapshot saved", zap.String("id", snap.ID))
	return nil
}

func logProgress(p trainParams, mem *memory.Memory, episode, total, correct int) {
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	fields := []zap.Field{
		zap.Int("episode", episode),
		zap.Float64("accuracy", accuracy),
		zap.Strings("beliefs", mem.Beliefs()),
	}
	for _, action := range gridworld.Actions() {
		u, err := mem.Uncertainty(action)
		if err != nil {
			continue
		}
		p.collector.ObserveUncertainty(u)
		fields = append(fields, zap.Float64("uncertainty_"+action, u))
	}
	p.logger.Info("training progress", fields...)
}

func buildStore(cfg config.StoreConfig, logger *zap.Logger) (store.SnapshotStore, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return store.NewRedisStore(cfg.Redis, logger)
	case config.BackendSQLite:
		return store.NewGormStore(cfg.SQLitePath, logger)
	default:
		return store.NewInMemoryStore(logger), nil
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint failed", zap.Error(err))
	}
}
