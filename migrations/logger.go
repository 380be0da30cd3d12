package migrations

import (
	"strings"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

// gooseLogger sends goose progress lines to the application log instead of
// stderr, where they would interleave with CLI output.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug().Str("func", "goose").Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Fatal().Str("func", "goose").Msgf(strings.TrimSuffix(format, "\n"), v...)
}
