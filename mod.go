// Package codecs is the root of the DICOM codec registry. It holds the
// process-wide logger and the list of Prometheus collectors exported by the
// sub-packages.
//
// The registry itself lives in codec/registry, the discovery of codec
// implementations in codec/discovery and the glue that rebuilds a registry
// from a source in codec/loader.
package codecs

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(zerolog.InfoLevel)

// PromCollectors is the list of Prometheus collectors defined by the
// packages of the module. They are not registered by default so that an
// application decides where, and if, they are exposed.
var PromCollectors []prometheus.Collector
