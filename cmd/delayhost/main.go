// Command delayhost runs the stereo delay on the default audio devices and
// takes parameter changes from NATS.
//
// Usage:
//
//	delayhost [flags]
//
// Parameter messages are JSON objects with a parameter id and a normalized
// value, for example {"id":600,"value":0.4} sets the mix to 40 %.
//
// Examples:
//
//	delayhost -nats nats://localhost:4222
//	delayhost -rate 44100 -block 128 -preset delay.state
//	delayhost -params
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/nichesounds/algo-delay/dsp/core"
	"github.com/nichesounds/algo-delay/dsp/engine"
	"github.com/nichesounds/algo-delay/dsp/param"
	"github.com/nichesounds/algo-delay/internal/audio"
	"github.com/nichesounds/algo-delay/internal/control"
	"github.com/nichesounds/algo-delay/measure/level"
	"github.com/nichesounds/algo-delay/plugin"
)

func main() {
	natsURL := flag.String("nats", "nats://localhost:4222", "NATS server URL (empty disables remote control)")
	subject := flag.String("subject", control.DefaultSubject, "NATS subject for parameter messages")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 256, "frames per buffer")
	scale := flag.Float64("scale", core.DefaultScaleFactor, "samples per second of delay")
	preset := flag.String("preset", "", "state file to load before starting")
	save := flag.String("save", "", "state file to write on exit")
	status := flag.Duration("status", 5*time.Second, "interval between level reports (0 disables)")
	listParams := flag.Bool("params", false, "list parameters and exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: delayhost [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the stereo delay on the default audio devices.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listParams {
		if err := printParams(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := hostConfig{
		NATSURL:  *natsURL,
		Subject:  *subject,
		Rate:     *rate,
		Block:    *block,
		Scale:    *scale,
		Preset:   *preset,
		Save:     *save,
		Status:   *status,
		Backend:  audio.NewPortAudioBackend(),
		Dial:     dialNATS,
		Logger:   logger,
		Attempts: 5,
	}
	if err := run(ctx, cfg); err != nil {
		logger.Error("host failed", "err", err)
		os.Exit(1)
	}
}

type hostConfig struct {
	NATSURL  string
	Subject  string
	Rate     float64
	Block    int
	Scale    float64
	Preset   string
	Save     string
	Status   time.Duration
	Backend  audio.Backend
	Dial     func(url string, attempts int, logger *slog.Logger) (control.Conn, error)
	Logger   *slog.Logger
	Attempts int
}

func dialNATS(url string, attempts int, logger *slog.Logger) (control.Conn, error) {
	nc, err := control.Dial(url, attempts, logger)
	if err != nil {
		return nil, err
	}
	return control.NewConnAdapter(nc), nil
}

func run(ctx context.Context, cfg hostConfig) error {
	logger := cfg.Logger

	proc := plugin.NewDelayProcessor(
		core.WithScaleFactor(cfg.Scale),
		core.WithSampleRate(cfg.Rate),
		core.WithBlockSize(cfg.Block),
	)
	if err := proc.SetupProcessing(engine.Sample32); err != nil {
		return err
	}

	if cfg.Preset != "" {
		if err := loadPreset(cfg.Preset, proc); err != nil {
			return err
		}
		logger.Info("loaded preset", "path", cfg.Preset, "params", proc.Snapshot())
	}

	if err := proc.Activate(); err != nil {
		return err
	}
	defer proc.Deactivate()

	if cfg.NATSURL != "" {
		conn, err := cfg.Dial(cfg.NATSURL, cfg.Attempts, logger)
		if err != nil {
			return err
		}
		sub := control.NewSubscriber(conn, cfg.Subject, proc.Parameters(), logger)
		defer sub.Close()
		if err := sub.Start(); err != nil {
			return err
		}
	}

	if cfg.Status > 0 {
		go reportLevels(ctx, proc, cfg.Status, logger)
	}

	host := audio.NewHost(cfg.Backend, proc, audio.Config{SampleRate: cfg.Rate, FramesPerBuffer: cfg.Block}, logger)
	if err := host.Run(ctx); err != nil {
		return err
	}

	if cfg.Save != "" {
		if err := savePreset(cfg.Save, proc); err != nil {
			return err
		}
		logger.Info("saved state", "path", cfg.Save)
	}
	return nil
}

func loadPreset(path string, proc *plugin.DelayProcessor) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := proc.SetState(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func savePreset(path string, proc *plugin.DelayProcessor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := proc.GetState(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func reportLevels(ctx context.Context, proc *plugin.DelayProcessor, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	m := proc.Meter()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := proc.Snapshot()
			logger.Info("status",
				"leftRMSdB", level.DB(m.RMS(engine.Left)),
				"rightRMSdB", level.DB(m.RMS(engine.Right)),
				"leftPeakdB", level.DB(m.Peak(engine.Left)),
				"rightPeakdB", level.DB(m.Peak(engine.Right)),
				"bypass", s.Bypass,
				"mix", s.Mix,
			)
		}
	}
}

func printParams() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tName\tUnit\tSteps\tDefault\tFlags\n"); err != nil {
		return err
	}
	for _, info := range param.Infos() {
		def, err := param.Format(info.ID, info.DefaultValue)
		if err != nil {
			return err
		}
		flags := ""
		if info.Flags&param.CanAutomate != 0 {
			flags += "automate "
		}
		if info.Flags&param.IsBypass != 0 {
			flags += "bypass"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			info.ID, info.Name, info.Unit, info.StepCount, def, flags); err != nil {
			return err
		}
	}
	return tw.Flush()
}
