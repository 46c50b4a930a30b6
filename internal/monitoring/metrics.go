package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// DMS 导出指标
	ExportsTotal        prometheus.Counter
	ExportFailuresTotal prometheus.Counter
	ExportDuration      prometheus.Histogram
	RecordsExported     *prometheus.GaugeVec   // 按文件统计最近一次导出的行数
	RecordsSkipped      *prometheus.CounterVec // 按文件统计被跳过的坏记录
	DriftDetectedTotal  *prometheus.CounterVec // 按文件统计检测到的漂移
	DriftRewritesTotal  prometheus.Counter

	// 遮蔽别名清理指标
	ShadowAliasesRemovedTotal prometheus.Counter
}

// NewMetrics 创建监控指标（promauto 自动注册到默认 Registry，进程内只调用一次）
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dockspace_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dockspace_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ExportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dockspace_dms_exports_total",
				Help: "Total number of completed DMS config exports",
			},
		),

		ExportFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dockspace_dms_export_failures_total",
				Help: "Total number of failed DMS config exports",
			},
		),

		ExportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dockspace_dms_export_duration_seconds",
				Help:    "DMS config export duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		RecordsExported: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dockspace_dms_records_exported",
				Help: "Number of records written in the most recent export, per file",
			},
			[]string{"file"},
		),

		RecordsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dockspace_dms_records_skipped_total",
				Help: "Total number of records skipped during export, per file",
			},
			[]string{"file"},
		),

		DriftDetectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dockspace_dms_drift_detected_total",
				Help: "Total number of drift detections, per file",
			},
			[]string{"file"},
		),

		DriftRewritesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dockspace_dms_drift_rewrites_total",
				Help: "Total number of drifted files rewritten by the verifier",
			},
		),

		ShadowAliasesRemovedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dockspace_dms_shadow_aliases_removed_total",
				Help: "Total number of aliases removed because they shadowed a mailbox",
			},
		),
	}
}

// HTTPHandler 返回 Prometheus 指标的 HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
