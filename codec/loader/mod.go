// Package loader rebuilds a codec registry from the candidates found by a
// discovery source.
//
// A reload instantiates every candidate implementing the codec capability and
// indexes it by the transfer syntax it declares. The registry content is
// swapped in one step at the end, so that readers observe either the previous
// or the new set of codecs, never a partial one. A candidate that cannot be
// instantiated is reported and skipped.
package loader

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	codecs "github.com/sunxiaotianmg/fo-dicom.Codecs"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/registry"
	"golang.org/x/xerrors"
)

// defines prometheus metrics
var (
	promCodecs = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dicodec_registry_codecs",
		Help: "number of codecs in the registry after the last reload",
	})

	promReloads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dicodec_reload_total",
		Help: "total number of reloads",
	})

	promFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dicodec_instantiation_failures_total",
		Help: "total number of candidates that could not be instantiated",
	})
)

func init() {
	codecs.PromCollectors = append(codecs.PromCollectors, promCodecs,
		promReloads, promFailures)
}

// State is the state of a loader.
type State int32

const (
	// Idle is the state of a loader between two reloads.
	Idle State = iota

	// Reloading is the state of a loader during a reload.
	Reloading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reloading:
		return "reloading"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// InstantiationError is the error reported when a candidate cannot be turned
// into a codec.
type InstantiationError struct {
	Candidate string
	Err       error
}

// Error implements error.
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate '%s': %v", e.Candidate, e.Err)
}

// Unwrap returns the cause of the failure.
func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// Report is the outcome of a reload.
type Report struct {
	// ID identifies the reload in the logs.
	ID string

	// Source is the source the codecs have been loaded from.
	Source discovery.Source

	// Registered is the sorted list of transfer syntaxes in the registry
	// after the reload.
	Registered []codec.TransferSyntax

	// Codecs is the number of candidates implementing the capability.
	Codecs int

	// Skipped is the number of candidates that do not implement it.
	Skipped int

	// Failures contains an *InstantiationError for each codec that could not
	// be created.
	Failures []error
}

// Option is the type of options to create a loader.
type Option func(*Loader)

// WithLogger sets the logger of the loader.
func WithLogger(l zerolog.Logger) Option {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// Loader populates a registry from a discovery source. Only one reload runs at
// a time.
type Loader struct {
	sync.Mutex

	registry registry.Registry
	finder   discovery.Finder
	logger   zerolog.Logger
	state    int32
}

// New returns a new idle loader for the registry.
func New(reg registry.Registry, finder discovery.Finder, opts ...Option) *Loader {
	ld := &Loader{
		registry: reg,
		finder:   finder,
		logger:   codecs.Logger.With().Str("module", "loader").Logger(),
	}

	for _, opt := range opts {
		opt(ld)
	}

	return ld
}

// State returns the current state of the loader.
func (ld *Loader) State() State {
	return State(atomic.LoadInt32(&ld.state))
}

// Reload replaces the content of the registry with the codecs found in the
// source. When several codecs declare the same transfer syntax, the last one
// discovered wins. Failures are contained: they are logged and returned in the
// report.
func (ld *Loader) Reload(src discovery.Source) Report {
	ld.Lock()
	defer ld.Unlock()

	atomic.StoreInt32(&ld.state, int32(Reloading))
	defer atomic.StoreInt32(&ld.state, int32(Idle))

	report := Report{
		ID:     xid.New().String(),
		Source: src,
	}

	logger := ld.logger.With().Str("reload", report.ID).Logger()

	entries := make(map[codec.TransferSyntax]codec.Codec)

	iter := ld.finder.FindCandidates(src)
	for iter.HasNext() {
		candidate := iter.GetNext()

		if !discovery.IsCodec(candidate) {
			report.Skipped++
			continue
		}

		report.Codecs++

		c, err := instantiate(candidate)
		if err != nil {
			err = &InstantiationError{Candidate: candidate.Name, Err: err}

			logger.Error().Err(err).Str("candidate", candidate.Name).Send()
			report.Failures = append(report.Failures, err)
			promFailures.Inc()

			continue
		}

		ts := c.TransferSyntax()

		prev, found := entries[ts]
		if found {
			logger.Debug().
				Str("transfer-syntax", ts.String()).
				Str("previous", fmt.Sprintf("%T", prev)).
				Str("candidate", candidate.Name).
				Msg("codec replaced")
		}

		entries[ts] = c
	}

	ld.registry.Replace(entries)

	report.Registered = make([]codec.TransferSyntax, 0, len(entries))
	for ts := range entries {
		report.Registered = append(report.Registered, ts)
	}

	sort.Slice(report.Registered, func(i, j int) bool {
		return report.Registered[i] < report.Registered[j]
	})

	promReloads.Inc()
	promCodecs.Set(float64(len(entries)))

	if report.Codecs == 0 {
		logger.Warn().
			Str("path", src.Path).
			Str("pattern", src.GetPattern()).
			Msg("no codecs were found")

		return report
	}

	logger.Info().
		Str("source", src.String()).
		Int("registered", len(entries)).
		Int("failures", len(report.Failures)).
		Msg("codecs loaded")

	return report
}

// instantiate creates the codec of the candidate. A panic of the constructor
// is returned as an error.
func instantiate(candidate discovery.Candidate) (c codec.Codec, err error) {
	defer func() {
		r := recover()
		if r != nil {
			c = nil
			err = xerrors.Errorf("constructor panicked: %v", r)
		}
	}()

	if candidate.New == nil {
		return nil, xerrors.New("missing constructor")
	}

	value, err := candidate.New()
	if err != nil {
		return nil, xerrors.Errorf("constructor failed: %v", err)
	}

	c, ok := value.(codec.Codec)
	if !ok {
		return nil, xerrors.Errorf("invalid codec type '%T'", value)
	}

	if c.TransferSyntax() == "" {
		return nil, xerrors.New("empty transfer syntax")
	}

	return c, nil
}
