package output

import (
	"fmt"
	"io"

	"github.com/c360studio/semvocab/config"
)

// New creates the sink selected by cfg.Output.Sink. stdout is used by the
// stdout sink. contentType is attached to NATS messages.
func New(cfg *config.Config, stdout io.Writer, contentType string) (Sink, error) {
	switch cfg.Output.Sink {
	case config.SinkFile:
		return NewFileSink(cfg.Output.Path), nil
	case config.SinkStdout:
		return NewWriterSink(stdout), nil
	case config.SinkNATS:
		return DialNATS(cfg.NATS.URL, cfg.NATS.Subject, contentType)
	default:
		return nil, fmt.Errorf("unknown output sink: %s", cfg.Output.Sink)
	}
}
