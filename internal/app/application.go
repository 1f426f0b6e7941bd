package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/basestation"
	"go1090/internal/decode"
	"go1090/internal/demod"
	"go1090/internal/filter"
	"go1090/internal/frame"
	"go1090/internal/icaocache"
	"go1090/internal/logging"
	"go1090/internal/rtlsdr"
	"go1090/internal/tracker"
)

// Application wires the capture -> demodulate -> frame -> decode ->
// track -> filter -> sink pipeline together and owns its lifecycle.
type Application struct {
	config Config
	logger *logrus.Logger

	rtlsdr     *rtlsdr.RTLSDRDevice
	demod      *demod.Demodulator
	icaoCache  *icaocache.Cache
	tracker    *tracker.Tracker
	filter     *filter.Engine
	logRotator *logging.LogRotator
	baseStation *basestation.Writer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication creates a new application instance.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start initializes every component, runs the pipeline, and blocks until
// a shutdown signal arrives.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting ADS-B decoder")

	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.run(); err != nil {
		app.logger.WithError(err).Error("application error")
		return err
	}

	<-sigChan
	app.logger.Info("received shutdown signal")
	app.shutdown()

	return nil
}

func (app *Application) initializeComponents() error {
	var err error

	// Hex frame capture (spec.md §6) replaces RTL-SDR/IQ capture rather
	// than running alongside it: both feed the same decoded-bit stage,
	// so there's nothing for a dongle to demodulate once hex lines are
	// the input.
	if app.config.HexInputPath == "" {
		app.rtlsdr, err = rtlsdr.NewRTLSDRDevice(app.config.DeviceIndex)
		if err != nil {
			return fmt.Errorf("failed to initialize RTL-SDR: %w", err)
		}
		if err := app.rtlsdr.Configure(app.config.Frequency, app.config.SampleRate, app.config.Gain); err != nil {
			return fmt.Errorf("failed to configure RTL-SDR: %w", err)
		}
		app.demod = demod.New(app.logger)
	}
	app.icaoCache = icaocache.New(icaocache.DefaultTTL, icaocache.DefaultCapacity)

	app.tracker, err = tracker.New(app.config.trackerConfig(), app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracker: %w", err)
	}

	app.filter, err = filter.New(app.config.filterConfig(), app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize filter engine: %w", err)
	}

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}
	app.baseStation = basestation.NewWriter(app.logRotator, app.logger)

	return nil
}

func (app *Application) run() error {
	app.logger.Info("starting capture and ADS-B pipeline")

	if app.config.HexInputPath != "" {
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := app.runHexCapture(app.config.HexInputPath); err != nil {
				app.logger.WithError(err).Error("hex frame capture failed")
			}
		}()
	} else {
		dataChan := make(chan []byte, 100)

		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := app.rtlsdr.StartCapture(app.ctx, dataChan); err != nil {
				app.logger.WithError(err).Error("RTL-SDR capture failed")
			}
		}()

		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.processIQData(dataChan)
		}()
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(app.ctx)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.runMaintenanceLane()
	}()

	if app.config.BeastListenAddr != "" {
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := app.runBeastListener(app.config.BeastListenAddr); err != nil {
				app.logger.WithError(err).Error("beast listener failed")
			}
		}()
	}

	app.logger.Info("all components started")
	return nil
}

// processIQData converts raw I/Q bytes into magnitude samples, demodulates
// candidate Mode S frames, validates/corrects CRC, decodes the payload and
// hands it to the tracker and filter stages.
func (app *Application) processIQData(dataChan <-chan []byte) {
	packets := 0

	for {
		select {
		case <-app.ctx.Done():
			app.logger.Info("I/Q data processing stopped")
			return
		case data := <-dataChan:
			if data == nil {
				continue
			}
			packets++

			now := adsb.CaptureTime{Monotonic: time.Duration(packets), Wall: time.Now().UTC()}
			mag := demod.ComputeMagnitude(data)
			candidates := app.demod.Demodulate(mag, app.config.SampleRate, now)

			for _, c := range candidates {
				app.processCandidate(c)
			}
		}
	}
}

func (app *Application) processCandidate(c demod.Candidate) {
	app.processFrameBits(c.Bits, c.CaptureTime, c.SignalDBFS)
}

// processFrameBits runs one raw Mode S frame (56 or 112 bits, however it
// was captured) through CRC validation/correction, payload decode,
// tracking and anomaly filtering. Both the RTL-SDR/demod path and the
// Beast-protocol capture path converge here.
func (app *Application) processFrameBits(bits []byte, capture adsb.CaptureTime, signalDBFS *float64) {
	modeFrame, err := frame.Parse(bits, capture, signalDBFS, app.icaoCache, app.config.EnableCRCCorrection)
	if err != nil {
		app.logger.WithError(err).Debug("frame parse failed")
		return
	}

	msg, err := decode.Decode(modeFrame)
	if err != nil {
		app.logger.WithError(err).Debug("message decode failed")
		return
	}

	events := app.tracker.Ingest(msg)
	for _, ev := range events {
		if err := app.baseStation.WriteTrackEvent(ev); err != nil {
			app.logger.WithError(err).Debug("failed to write track event")
		}
		for _, anomaly := range app.filter.EvaluateAircraft(ev.State, ev.At) {
			if err := app.baseStation.WriteAnomaly(anomaly); err != nil {
				app.logger.WithError(err).Debug("failed to write anomaly")
			}
		}
	}
}

// runMaintenanceLane prunes stale/phantom aircraft and runs the
// cross-aircraft proximity detector on a wall-clock schedule, independent
// of how often messages arrive (spec.md §5).
func (app *Application) runMaintenanceLane() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			app.tracker.PruneStale(now)
			app.tracker.PrunePhantoms(now)

			snapshot := app.tracker.Snapshot()
			for _, anomaly := range app.filter.EvaluateProximity(snapshot, now) {
				if err := app.baseStation.WriteAnomaly(anomaly); err != nil {
					app.logger.WithError(err).Debug("failed to write proximity anomaly")
				}
			}
		}
	}
}

func (app *Application) shutdown() {
	app.logger.Info("shutting down application")
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("shutdown timeout, forcing exit")
	}

	if app.rtlsdr != nil {
		app.rtlsdr.Close()
	}
	if app.logRotator != nil {
		app.logRotator.Close()
	}

	app.logger.Info("shutdown complete")
}
