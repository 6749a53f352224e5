// gimbal builds a transform hierarchy from a TOML scene file, advances its
// tweens for the configured number of ticks and prints every node's local
// and world pose as YAML.
//
// Usage:
//
//	go run ./cmd/gimbal -config cmd/gimbal/testdata/arm.toml
//	go run ./cmd/gimbal -config scene.toml -dump
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/gimbal"
	"github.com/phanxgames/gimbal/internal/config"
	"github.com/phanxgames/gimbal/internal/sim"
)

var spewConfig = &spew.ConfigState{Indent: " ", DisableCapacities: true, DisablePointerAddresses: true}

func main() {
	configPath := flag.String("config", "scene.toml", "path to the scene file")
	dump := flag.Bool("dump", false, "dump the parsed config at debug level")
	ticks := flag.Int("ticks", -1, "override simulation.ticks")
	flag.Parse()

	if err := run(os.Stdout, *configPath, *dump, *ticks); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, path string, dump bool, ticks int) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if ticks >= 0 {
		cfg.Simulation.Ticks = ticks
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer log.Sync()
	gimbal.SetLogger(log.Named("gimbal"))
	defer gimbal.SetLogger(nil)

	if dump {
		log.Debug("config\n" + spewConfig.Sdump(cfg))
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(err, "config %s", path)
	}

	scene, err := sim.Build(cfg, log)
	if err != nil {
		return err
	}
	sim.Run(scene, cfg.Simulation.Ticks, cfg.Simulation.Delta)
	log.Info("simulation finished",
		zap.Int("ticks", cfg.Simulation.Ticks),
		zap.Float32("delta", cfg.Simulation.Delta))

	return sim.Report(out, scene)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
