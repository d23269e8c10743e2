package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Egglessbonek/project-oasis/internal/hash"
	"github.com/Egglessbonek/project-oasis/internal/logging"
	"github.com/Egglessbonek/project-oasis/internal/metrics"
	"github.com/Egglessbonek/project-oasis/store"
	"github.com/Egglessbonek/project-oasis/types"
)

// Engine is the computation dependency of the worker. It is satisfied by
// *oasis.Engine and by fakes in tests.
type Engine interface {
	// ComputeServiceAreas divides a boundary among weighted sites.
	ComputeServiceAreas(ctx context.Context, req *types.Request) (*types.Result, error)
}

// Message is the wire format of one recalculation request.
type Message struct {
	// RequestID correlates log lines across publisher and worker.
	RequestID string `json:"request_id"`

	// AreaID names the service area to recompute.
	AreaID string `json:"area_id"`
}

// Option configures a Worker with optional dependencies.
type Option func(*workerOptions)

type workerOptions struct {
	logger  types.Logger
	metrics types.MetricsCollector
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for New
func WithLogger(logger types.Logger) Option {
	return func(o *workerOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *workerOptions) {
		o.metrics = metrics
	}
}

// Worker consumes recalculation requests from NATS and runs them through
// the store and engine.
type Worker struct {
	cfg     Config
	nc      *nats.Conn
	store   store.Store
	engine  Engine
	logger  types.Logger
	metrics types.MetricsCollector

	// fingerprints remembers, per area, the inputs of the last successful
	// run so unchanged areas are skipped.
	fingerprints *xsync.Map[string, uint64]

	mu      sync.Mutex
	sub     *nats.Subscription
	started bool
}

// New creates a Worker.
//
// Missing configuration values are filled with defaults before
// validation, so a zero Config is usable.
//
// Parameters:
//   - cfg: Worker configuration (defaults applied in place)
//   - nc: Connected NATS client
//   - st: Persistence store for loading and saving areas
//   - engine: Service-area computation engine
//   - opts: Optional logger and metrics collector
//
// Returns:
//   - *Worker: Ready-to-start worker
//   - error: Nil-dependency or configuration errors
func New(cfg *Config, nc *nats.Conn, st store.Store, engine Engine, opts ...Option) (*Worker, error) {
	if nc == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	if st == nil {
		return nil, types.ErrStoreRequired
	}
	if engine == nil {
		return nil, types.ErrEngineRequired
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &workerOptions{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Worker{
		cfg:          *cfg,
		nc:           nc,
		store:        st,
		engine:       engine,
		logger:       options.logger,
		metrics:      options.metrics,
		fingerprints: xsync.NewMap[string, uint64](),
	}, nil
}

// Start subscribes to the recalculation subject.
//
// Returns:
//   - error: types.ErrAlreadyStarted when called twice, or the
//     subscription error
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return types.ErrAlreadyStarted
	}

	sub, err := w.nc.QueueSubscribe(w.cfg.Subject, w.cfg.QueueGroup, w.handle)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", w.cfg.Subject, err)
	}

	w.sub = sub
	w.started = true
	w.logger.Info("worker started", "subject", w.cfg.Subject, "queueGroup", w.cfg.QueueGroup)

	return nil
}

// Stop unsubscribes from the recalculation subject. In-flight handlers
// run to completion.
//
// Returns:
//   - error: types.ErrNotStarted when the worker is not running
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return types.ErrNotStarted
	}

	if err := w.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("unsubscribing from %s: %w", w.cfg.Subject, err)
	}

	w.sub = nil
	w.started = false
	w.logger.Info("worker stopped", "subject", w.cfg.Subject)

	return nil
}

func (w *Worker) handle(msg *nats.Msg) {
	started := time.Now()

	var m Message
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		w.logger.Error("dropping malformed recalculation message", "error", err)
		w.metrics.RecordRecalcResult("failed")

		return
	}

	result := w.recalculate(&m)
	w.metrics.RecordRecalcResult(result)
	w.metrics.ObserveRecalcDuration(time.Since(started).Seconds())
}

// recalculate runs one request end to end and returns the metric outcome.
func (w *Worker) recalculate(m *Message) string {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.ComputeTimeout)
	defer cancel()

	req, err := w.store.LoadComputation(ctx, m.AreaID)
	if err != nil {
		w.logger.Error("failed to load computation",
			"requestID", m.RequestID, "areaID", m.AreaID, "error", err)

		return "failed"
	}

	if len(req.SiteIDs) == 0 {
		// Area has no eligible wells; nothing to compute or persist.
		w.logger.Info("area has no eligible wells; nothing to do",
			"requestID", m.RequestID, "areaID", m.AreaID)

		return "skipped"
	}

	fingerprint := hash.Request(req)
	if last, ok := w.fingerprints.Load(m.AreaID); ok && last == fingerprint {
		w.logger.Debug("inputs unchanged; skipping recalculation",
			"requestID", m.RequestID, "areaID", m.AreaID)

		return "skipped"
	}

	result, err := w.engine.ComputeServiceAreas(ctx, req)
	if err != nil {
		w.logger.Error("computation failed",
			"requestID", m.RequestID, "areaID", m.AreaID, "error", err)

		return "failed"
	}

	if err := w.store.SaveServiceAreas(ctx, m.AreaID, result); err != nil {
		w.logger.Error("failed to save service areas",
			"requestID", m.RequestID, "areaID", m.AreaID, "error", err)

		return "failed"
	}

	w.fingerprints.Store(m.AreaID, fingerprint)
	w.logger.Info("service areas recalculated",
		"requestID", m.RequestID,
		"areaID", m.AreaID,
		"wells", len(req.SiteIDs),
		"converged", result.Converged,
		"iterations", result.Iterations,
	)

	return "completed"
}

// Publish sends a recalculation request for one area.
//
// Parameters:
//   - nc: Connected NATS client
//   - subject: Recalculation subject (Config.Subject of the workers)
//   - areaID: Service area to recompute
//
// Returns:
//   - string: Generated request ID, for log correlation
//   - error: Marshalling or publish errors
func Publish(nc *nats.Conn, subject, areaID string) (string, error) {
	m := Message{
		RequestID: uuid.NewString(),
		AreaID:    areaID,
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshalling recalculation message: %w", err)
	}

	if err := nc.Publish(subject, data); err != nil {
		return "", fmt.Errorf("publishing to %s: %w", subject, err)
	}

	return m.RequestID, nil
}
