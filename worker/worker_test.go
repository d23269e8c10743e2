package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	oasistest "github.com/Egglessbonek/project-oasis/testing"
	"github.com/Egglessbonek/project-oasis/types"
)

type fakeStore struct {
	mu        sync.Mutex
	request   *types.Request
	loadErr   error
	saveErr   error
	loads     int
	saves     int
	lastSaved *types.Result
}

func (s *fakeStore) LoadComputation(_ context.Context, _ string) (*types.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	return s.request, nil
}

func (s *fakeStore) SaveServiceAreas(_ context.Context, _ string, result *types.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.lastSaved = result

	return nil
}

func (s *fakeStore) counts() (loads, saves int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loads, s.saves
}

type fakeEngine struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *fakeEngine) ComputeServiceAreas(_ context.Context, req *types.Request) (*types.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return nil, e.err
	}

	regions := make(map[string][]orb.Ring, len(req.SiteIDs))
	for _, id := range req.SiteIDs {
		regions[id] = []orb.Ring{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	}

	return &types.Result{Regions: regions, Converged: true, Iterations: 3}, nil
}

func (e *fakeEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.calls
}

type recordingMetrics struct {
	types.MetricsCollector

	mu      sync.Mutex
	results []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{}
}

func (m *recordingMetrics) RecordRecalcResult(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *recordingMetrics) ObserveRecalcDuration(float64) {}

func (m *recordingMetrics) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.results...)
}

func testRequest() *types.Request {
	return &types.Request{
		SiteIDs:   []string{"w1", "w2"},
		Locations: []orb.Point{{0.05, 0.1}, {0.15, 0.1}},
		Weights:   []float64{100, 200},
		Boundary:  orb.Ring{{0, 0}, {0.2, 0}, {0.2, 0.2}, {0, 0.2}, {0, 0}},
	}
}

func TestNew_RequiredDependencies(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)
	cfg := DefaultConfig()

	_, err := New(&cfg, nil, &fakeStore{}, &fakeEngine{})
	require.ErrorIs(t, err, types.ErrNATSConnectionRequired)

	_, err = New(&cfg, nc, nil, &fakeEngine{})
	require.ErrorIs(t, err, types.ErrStoreRequired)

	_, err = New(&cfg, nc, &fakeStore{}, nil)
	require.ErrorIs(t, err, types.ErrEngineRequired)
}

func TestNew_AppliesDefaults(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)
	cfg := Config{}

	w, err := New(&cfg, nc, &fakeStore{}, &fakeEngine{})

	require.NoError(t, err)
	require.Equal(t, "oasis.recalc", w.cfg.Subject)
	require.Equal(t, "oasis-workers", w.cfg.QueueGroup)
	require.Equal(t, 60*time.Second, w.cfg.ComputeTimeout)
}

func TestWorker_Lifecycle(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)
	cfg := DefaultConfig()

	w, err := New(&cfg, nc, &fakeStore{}, &fakeEngine{}, WithLogger(oasistest.NewTestLogger(t)))
	require.NoError(t, err)

	require.ErrorIs(t, w.Stop(), types.ErrNotStarted)
	require.NoError(t, w.Start())
	require.ErrorIs(t, w.Start(), types.ErrAlreadyStarted)
	require.NoError(t, w.Stop())
	require.ErrorIs(t, w.Stop(), types.ErrNotStarted)
}

func TestWorker_RecalculatesOnPublish(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)

	st := &fakeStore{request: testRequest()}
	engine := &fakeEngine{}
	collector := newRecordingMetrics()

	cfg := Config{Subject: "test.recalc.single"}
	w, err := New(&cfg, nc, st, engine,
		WithLogger(oasistest.NewTestLogger(t)),
		WithMetrics(collector),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop() //nolint:errcheck

	requestID, err := Publish(nc, cfg.Subject, "area-1")
	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	require.Eventually(t, func() bool {
		_, saves := st.counts()
		return saves == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, 1, engine.count())
	require.True(t, st.lastSaved.Converged)
	require.Contains(t, collector.recorded(), "completed")
}

func TestWorker_SkipsUnchangedInputs(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)

	st := &fakeStore{request: testRequest()}
	engine := &fakeEngine{}
	collector := newRecordingMetrics()

	cfg := Config{Subject: "test.recalc.dedup"}
	w, err := New(&cfg, nc, st, engine, WithMetrics(collector))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop() //nolint:errcheck

	_, err = Publish(nc, cfg.Subject, "area-1")
	require.NoError(t, err)
	_, err = Publish(nc, cfg.Subject, "area-1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		loads, _ := st.counts()
		return loads == 2
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		results := collector.recorded()
		return len(results) == 2
	}, 5*time.Second, 10*time.Millisecond)

	// Both messages were processed, but only the first one computed.
	require.Equal(t, 1, engine.count())
	_, saves := st.counts()
	require.Equal(t, 1, saves)
	require.ElementsMatch(t, []string{"completed", "skipped"}, collector.recorded())
}

func TestWorker_AreaWithoutWellsIsNoOp(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)

	// An existing area whose wells are all ineligible loads as a request
	// with a boundary but no sites.
	st := &fakeStore{request: &types.Request{
		Boundary: orb.Ring{{0, 0}, {0.2, 0}, {0.2, 0.2}, {0, 0.2}, {0, 0}},
	}}
	engine := &fakeEngine{}
	collector := newRecordingMetrics()

	cfg := Config{Subject: "test.recalc.nowells"}
	w, err := New(&cfg, nc, st, engine,
		WithLogger(oasistest.NewTestLogger(t)),
		WithMetrics(collector),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop() //nolint:errcheck

	_, err = Publish(nc, cfg.Subject, "area-1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(collector.recorded()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, []string{"skipped"}, collector.recorded())
	require.Equal(t, 0, engine.count())
	_, saves := st.counts()
	require.Equal(t, 0, saves)
}

func TestWorker_LoadFailureIsReported(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)

	st := &fakeStore{loadErr: errors.New("database is down")}
	engine := &fakeEngine{}
	collector := newRecordingMetrics()

	cfg := Config{Subject: "test.recalc.loadfail"}
	w, err := New(&cfg, nc, st, engine, WithMetrics(collector))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop() //nolint:errcheck

	_, err = Publish(nc, cfg.Subject, "area-1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(collector.recorded()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, []string{"failed"}, collector.recorded())
	require.Equal(t, 0, engine.count())
}

func TestWorker_MalformedMessageIsDropped(t *testing.T) {
	_, nc := oasistest.StartEmbeddedNATS(t)

	st := &fakeStore{request: testRequest()}
	collector := newRecordingMetrics()

	cfg := Config{Subject: "test.recalc.malformed"}
	w, err := New(&cfg, nc, st, &fakeEngine{}, WithMetrics(collector))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop() //nolint:errcheck

	require.NoError(t, nc.Publish(cfg.Subject, []byte("not json")))

	require.Eventually(t, func() bool {
		return len(collector.recorded()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, []string{"failed"}, collector.recorded())
	loads, _ := st.counts()
	require.Equal(t, 0, loads)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ComputeTimeout = 0
	require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
}
