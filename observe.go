package netsuite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netsuite",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SuiteTalk operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "netsuite",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SuiteTalk operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an already registered one,
// so several clients can share a registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("netsuite: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("netsuite: register metric: %w", err)
	}
	return nil
}

// observer logs and measures backend operations.
type observer struct {
	logger  *zap.Logger
	metrics *sdkMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, st *Status, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case st != nil && !st.IsSuccess:
		status = "remote_error"
	}

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch status {
	case "error":
		o.logger.Warn("operation failed",
			zap.String("op", op),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
	case "remote_error":
		o.logger.Warn("operation unsuccessful",
			zap.String("op", op),
			zap.Duration("duration", dur),
			zap.String("code", remoteCode(st)),
			zap.String("message", st.Messages()),
		)
	default:
		o.logger.Debug("operation completed",
			zap.String("op", op),
			zap.Duration("duration", dur),
		)
	}
}

func remoteCode(st *Status) string {
	if len(st.Details) == 0 {
		return ""
	}
	return st.Details[0].Code
}

func (r *ReadResponse) status() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

func (r *ReadResponseList) status() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

func (r *GetAllResult) status() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

func (r *SearchResult) status() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

func (r *WriteResponse) status() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

// observedBackend reports every call of the wrapped backend to an observer.
type observedBackend struct {
	inner Backend
	obs   *observer
}

func (b *observedBackend) Get(ctx context.Context, ref RecordRef) (*ReadResponse, error) {
	start := time.Now()
	resp, err := b.inner.Get(ctx, ref)
	b.obs.observe("get", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) GetList(ctx context.Context, refs []RecordRef) (*ReadResponseList, error) {
	start := time.Now()
	resp, err := b.inner.GetList(ctx, refs)
	b.obs.observe("getList", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) GetAll(ctx context.Context, recordType string) (*GetAllResult, error) {
	start := time.Now()
	resp, err := b.inner.GetAll(ctx, recordType)
	b.obs.observe("getAll", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) Search(ctx context.Context, search SearchRecord, pageSize int) (*SearchResult, error) {
	start := time.Now()
	resp, err := b.inner.Search(ctx, search, pageSize)
	b.obs.observe("search", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) SearchMoreWithID(ctx context.Context, searchID string, pageIndex int) (*SearchResult, error) {
	start := time.Now()
	resp, err := b.inner.SearchMoreWithID(ctx, searchID, pageIndex)
	b.obs.observe("searchMoreWithId", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) Upsert(ctx context.Context, typeName string, record *Record) (*WriteResponse, error) {
	start := time.Now()
	resp, err := b.inner.Upsert(ctx, typeName, record)
	b.obs.observe("upsert", start, resp.status(), err)
	return resp, err
}

func (b *observedBackend) Delete(ctx context.Context, ref RecordRef) (*WriteResponse, error) {
	start := time.Now()
	resp, err := b.inner.Delete(ctx, ref)
	b.obs.observe("delete", start, resp.status(), err)
	return resp, err
}
