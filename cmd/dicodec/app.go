package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	codecs "github.com/sunxiaotianmg/fo-dicom.Codecs"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/loader"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/registry"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/config"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

const shutdownTimeout = 5 * time.Second

// app holds the resources shared by the commands. In production the serve
// command is stopped via SIGINT or SIGTERM. Tests provide their own channel.
type app struct {
	out          io.Writer
	sigs         chan os.Signal
	enableSignal bool
}

func newApp(out io.Writer, sigs chan os.Signal) *cli.App {
	a := &app{
		out:  out,
		sigs: sigs,
	}

	if sigs == nil {
		a.sigs = make(chan os.Signal, 1)
		a.enableSignal = true
	}

	return &cli.App{
		Name:   "dicodec",
		Usage:  "DICOM transfer syntax codec registry",
		Writer: out,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "config",
				Usage: "path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "directory of codec plugins, the binary itself if empty",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "file name pattern of the codec plugins",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "load the codecs and list the supported transfer syntaxes",
				Action: a.list,
			},
			{
				Name:  "lookup",
				Usage: "load the codecs and look up the one of a transfer syntax",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ts",
						Usage:    "transfer syntax UID",
						Required: true,
					},
				},
				Action: a.lookup,
			},
			{
				Name:  "serve",
				Usage: "load the codecs and serve the registry and the metrics over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listening address, the configuration one if empty",
					},
				},
				Action: a.serve,
			},
		},
	}
}

// env is the registry and its loader built from the configuration.
type env struct {
	cfg      config.Config
	registry registry.Registry
	loader   *loader.Loader
}

func (a *app) setup(c *cli.Context) (env, error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return env{}, xerrors.Errorf("failed to load config: %v", err)
	}

	if c.IsSet("path") {
		cfg.Source.Path = c.String("path")
	}

	if c.IsSet("pattern") {
		cfg.Source.Pattern = c.String("pattern")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	err = cfg.Validate()
	if err != nil {
		return env{}, xerrors.Errorf("invalid config: %v", err)
	}

	level, _ := cfg.Level()
	codecs.Logger = codecs.Logger.Level(level)

	reg := registry.NewSimpleRegistry()

	return env{
		cfg:      cfg,
		registry: reg,
		loader:   loader.New(reg, discovery.NewFinder()),
	}, nil
}

func (a *app) list(c *cli.Context) error {
	e, err := a.setup(c)
	if err != nil {
		return err
	}

	report := e.loader.Reload(e.cfg.Source)

	for _, ts := range report.Registered {
		fmt.Fprintf(a.out, "%s\t%s\n", ts, ts.Name())
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(a.out, "ERROR: %v\n", failure)
	}

	return nil
}

func (a *app) lookup(c *cli.Context) error {
	e, err := a.setup(c)
	if err != nil {
		return err
	}

	e.loader.Reload(e.cfg.Source)

	ts := codec.TransferSyntax(c.String("ts"))

	impl, err := e.registry.Lookup(ts)
	if err != nil {
		return xerrors.Errorf("unsupported transfer syntax: %v", err)
	}

	fmt.Fprintf(a.out, "%s\t%s\t%T\n", ts, ts.Name(), impl)

	return nil
}

func (a *app) serve(c *cli.Context) error {
	e, err := a.setup(c)
	if err != nil {
		return err
	}

	addr := e.cfg.Metrics.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	if a.enableSignal {
		signal.Notify(a.sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(a.sigs)
	}

	e.loader.Reload(e.cfg.Source)

	promReg := prometheus.NewRegistry()

	for _, collector := range codecs.PromCollectors {
		err = promReg.Register(collector)
		if err != nil {
			fmt.Fprintf(a.out, "ERROR: failed to register: %v\n", err)
		}
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: newMux(e, e.cfg.Metrics.Path, promReg),
	}

	errs := make(chan error, 1)

	go func() {
		errs <- srv.ListenAndServe()
	}()

	codecs.Logger.Info().Str("addr", addr).Msg("server started")

	select {
	case err = <-errs:
		return xerrors.Errorf("server failed: %v", err)
	case <-a.sigs:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(ctx)
	if err != nil {
		return xerrors.Errorf("failed to stop the server: %v", err)
	}

	codecs.Logger.Info().Msg("server has been stopped")

	return nil
}

// codecEntry is the JSON description of a registered codec.
type codecEntry struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func newMux(e env, metricsPath string, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("/codecs", func(w http.ResponseWriter, r *http.Request) {
		keys := e.registry.Keys()
		entries := make([]codecEntry, 0, len(keys))

		for _, ts := range keys {
			impl, err := e.registry.Lookup(ts)
			if err != nil {
				// Removed by a concurrent reload.
				continue
			}

			entries = append(entries, codecEntry{
				UID:  ts.String(),
				Name: ts.Name(),
				Type: fmt.Sprintf("%T", impl),
			})
		}

		w.Header().Set("Content-Type", "application/json")

		err := json.NewEncoder(w).Encode(entries)
		if err != nil {
			codecs.Logger.Err(err).Msg("failed to write response")
		}
	})

	mux.HandleFunc("/reload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report := e.loader.Reload(e.cfg.Source)

		w.Header().Set("Content-Type", "application/json")

		err := json.NewEncoder(w).Encode(struct {
			ID         string   `json:"id"`
			Registered int      `json:"registered"`
			Failures   []string `json:"failures"`
		}{
			ID:         report.ID,
			Registered: len(report.Registered),
			Failures:   errorStrings(report.Failures),
		})
		if err != nil {
			codecs.Logger.Err(err).Msg("failed to write response")
		}
	})

	return mux
}

func errorStrings(errs []error) []string {
	res := make([]string, len(errs))
	for i, err := range errs {
		res[i] = err.Error()
	}

	return res
}
