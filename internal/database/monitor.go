package database

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// commandMonitorConfig carries what the command monitor reports to.
type commandMonitorConfig struct {
	// logger receives slow and failed commands.
	logger *zerolog.Logger

	// traceLogger, when set, receives every command at debug level.
	traceLogger *zerolog.Logger

	// slowThreshold marks successful commands as slow. Zero disables it.
	slowThreshold time.Duration

	// durations observes command latency; nil disables metrics.
	durations *prometheus.HistogramVec
}

// commandTracer turns driver command events into logs and metrics.
//
// The driver reports the start and the end of a command separately, so the
// target of a command is remembered by request id between both.
type commandTracer struct {
	cfg     commandMonitorConfig
	pending sync.Map // request id -> commandTarget
}

// commandTarget is the namespace a command runs against.
type commandTarget struct {
	database   string
	collection string
}

// newCommandMonitor builds the event.CommandMonitor installed on the client.
func newCommandMonitor(cfg commandMonitorConfig) *event.CommandMonitor {
	tracer := &commandTracer{cfg: cfg}

	return &event.CommandMonitor{
		Started:   tracer.started,
		Succeeded: tracer.succeeded,
		Failed:    tracer.failed,
	}
}

func (t *commandTracer) started(_ context.Context, evt *event.CommandStartedEvent) {
	collection := ""
	if value, err := evt.Command.LookupErr(evt.CommandName); err == nil {
		collection, _ = value.StringValueOK()
	}
	t.pending.Store(evt.RequestID, commandTarget{database: evt.DatabaseName, collection: collection})

	if t.cfg.traceLogger != nil {
		t.cfg.traceLogger.Debug().
			Int64("request_id", evt.RequestID).
			Str("command", evt.CommandName).
			Str("database", evt.DatabaseName).
			Str("collection", collection).
			Msg("mongo command started")
	}
}

func (t *commandTracer) succeeded(_ context.Context, evt *event.CommandSucceededEvent) {
	target := t.finish(evt.RequestID)
	t.observe(evt.CommandName, "success", evt.Duration)

	if t.cfg.traceLogger != nil {
		t.cfg.traceLogger.Debug().
			Int64("request_id", evt.RequestID).
			Str("command", evt.CommandName).
			Str("collection", target.collection).
			Dur("duration", evt.Duration).
			Msg("mongo command succeeded")
	}

	if t.cfg.slowThreshold > 0 && evt.Duration >= t.cfg.slowThreshold && t.cfg.logger != nil {
		t.cfg.logger.Warn().
			Str("command", evt.CommandName).
			Str("database", target.database).
			Str("collection", target.collection).
			Dur("duration", evt.Duration).
			Dur("threshold", t.cfg.slowThreshold).
			Msg("slow mongo command")
	}
}

func (t *commandTracer) failed(_ context.Context, evt *event.CommandFailedEvent) {
	target := t.finish(evt.RequestID)
	t.observe(evt.CommandName, "failure", evt.Duration)

	if t.cfg.logger != nil {
		t.cfg.logger.Error().
			Str("command", evt.CommandName).
			Str("database", target.database).
			Str("collection", target.collection).
			Dur("duration", evt.Duration).
			Str("failure", evt.Failure).
			Msg("mongo command failed")
	}
}

// finish returns and forgets the target remembered for requestID.
func (t *commandTracer) finish(requestID int64) commandTarget {
	value, ok := t.pending.LoadAndDelete(requestID)
	if !ok {
		return commandTarget{}
	}
	target, _ := value.(commandTarget)
	return target
}

func (t *commandTracer) observe(command, outcome string, duration time.Duration) {
	if t.cfg.durations == nil {
		return
	}
	t.cfg.durations.WithLabelValues(command, outcome).Observe(duration.Seconds())
}
