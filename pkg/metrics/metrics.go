// Package metrics 提供 Prometheus helper，包含 HTTP、数据库与扫描管线指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/atlasvision/pkg/logging"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram
	// HTTP 响应大小
	HTTPResponseSize prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 业务指标
	ScansSubmittedTotal prometheus.Counter
	ScansProcessedTotal prometheus.Counter
	ScansFailedTotal    prometheus.Counter
	ScansInFlight       prometheus.Gauge
	AlertsRaisedTotal   prometheus.Counter

	// 推理调用指标，按模型维度区分
	InferenceRequestsTotal  *prometheus.CounterVec
	InferenceRequestSeconds *prometheus.HistogramVec
	InferenceErrorsTotal    *prometheus.CounterVec
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPResponseSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		}),

		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		ScansSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "scans_submitted_total",
			Help:      "Total scans accepted for processing",
		}),
		ScansProcessedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "scans_processed_total",
			Help:      "Total scans processed successfully",
		}),
		ScansFailedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "scans_failed_total",
			Help:      "Total scans that ended in failed status",
		}),
		ScansInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "scans_in_flight",
			Help:      "Number of scans currently being processed",
		}),
		AlertsRaisedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "alerts_raised_total",
			Help:      "Total inventory alerts raised",
		}),

		InferenceRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "inference_requests_total",
			Help:      "Total inference requests by model",
		}, []string{"model"}),
		InferenceRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "inference_request_duration_seconds",
			Help:      "Inference request duration in seconds by model",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"model"}),
		InferenceErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atlasvision",
			Subsystem: serviceName,
			Name:      "inference_errors_total",
			Help:      "Total inference request failures by model",
		}, []string{"model"}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.ScansSubmittedTotal,
		m.ScansProcessedTotal,
		m.ScansFailedTotal,
		m.ScansInFlight,
		m.AlertsRaisedTotal,
		m.InferenceRequestsTotal,
		m.InferenceRequestSeconds,
		m.InferenceErrorsTotal,
	}

	for _, collector := range collectors {
		if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
			logging.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logging.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(duration float64, responseSize int64) {
	m.HTTPRequestsTotal.Inc()
	m.HTTPRequestDuration.Observe(duration)
	m.HTTPResponseSize.Observe(float64(responseSize))
}

// RecordDBQuery 记录数据库查询
func (m *Metrics) RecordDBQuery(duration float64) {
	m.DBQueriesTotal.Inc()
	m.DBQueryDuration.Observe(duration)
}

// RecordScanSubmitted 记录接收的扫描任务
func (m *Metrics) RecordScanSubmitted() {
	m.ScansSubmittedTotal.Inc()
}

// RecordScanProcessed 记录处理完成的扫描任务
func (m *Metrics) RecordScanProcessed(failed bool) {
	if failed {
		m.ScansFailedTotal.Inc()
	} else {
		m.ScansProcessedTotal.Inc()
	}
}

// RecordInference 记录一次推理调用
func (m *Metrics) RecordInference(model string, seconds float64, err error) {
	m.InferenceRequestsTotal.WithLabelValues(model).Inc()
	m.InferenceRequestSeconds.WithLabelValues(model).Observe(seconds)
	if err != nil {
		m.InferenceErrorsTotal.WithLabelValues(model).Inc()
	}
}

// RecordAlert 记录生成的库存告警
func (m *Metrics) RecordAlert() {
	m.AlertsRaisedTotal.Inc()
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logging.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
