// Package metrics 基于Prometheus的指标
//
// 指标分两类：
//   - HTTP指标：请求数、耗时、并发数（由middleware.Metrics采集）
//   - 业务指标：库存数量变更、告警、清单、照片上传、报表导出
//
// 所有指标注册到prometheus默认Registry，通过 GET /metrics 暴露
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// =========================================
	// HTTP指标
	// =========================================

	// HTTPRequestsTotal HTTP请求总数
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的请求数
	HTTPRequestsInProgress prometheus.Gauge

	// =========================================
	// 业务指标
	// =========================================

	// QuantityChangesTotal 库存数量变更次数
	// result: success | conflict | not_found | invalid | error
	QuantityChangesTotal *prometheus.CounterVec

	// QuantityChangeDuration 数量变更事务耗时（含一次冲突重试）
	QuantityChangeDuration prometheus.Histogram

	// QuantityChangeRetriesTotal 冲突后重试次数
	QuantityChangeRetriesTotal prometheus.Counter

	// AlertsCreatedTotal 新建告警数
	AlertsCreatedTotal *prometheus.CounterVec

	// AlertsResolvedTotal 处理告警数
	AlertsResolvedTotal prometheus.Counter

	// ChecklistsCreatedTotal 新建清单数
	// source: login | manual
	ChecklistsCreatedTotal *prometheus.CounterVec

	// PhotosUploadedTotal 上传照片数
	PhotosUploadedTotal prometheus.Counter

	// ReportExportsTotal 报表导出次数
	// report: inventory | checklists，format: csv | pdf
	ReportExportsTotal *prometheus.CounterVec
)

// InitMetrics 初始化全部指标（可重复调用）
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		QuantityChangesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_quantity_changes_total",
				Help: "库存数量变更次数",
			},
			[]string{"result"},
		)

		QuantityChangeDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inventory_quantity_change_duration_seconds",
				Help:    "库存数量变更耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)

		QuantityChangeRetriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_quantity_change_retries_total",
				Help: "库存数量变更冲突重试次数",
			},
		)

		AlertsCreatedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alerts_created_total",
				Help: "新建告警数",
			},
			[]string{"kind", "severity"},
		)

		AlertsResolvedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "alerts_resolved_total",
				Help: "已处理告警数",
			},
		)

		ChecklistsCreatedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checklists_created_total",
				Help: "新建保洁清单数",
			},
			[]string{"source"},
		)

		PhotosUploadedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "checklist_photos_uploaded_total",
				Help: "上传的任务照片数",
			},
		)

		ReportExportsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_exports_total",
				Help: "报表导出次数",
			},
			[]string{"report", "format"},
		)
	})
}

// =========================================
// 业务埋点
// =========================================

// RecordQuantityChange 记录一次数量变更结果与耗时
func RecordQuantityChange(result string, elapsed time.Duration) {
	InitMetrics()
	QuantityChangesTotal.WithLabelValues(result).Inc()
	QuantityChangeDuration.Observe(elapsed.Seconds())
}

// RecordQuantityChangeRetry 记录一次冲突重试
func RecordQuantityChangeRetry() {
	InitMetrics()
	QuantityChangeRetriesTotal.Inc()
}

// RecordAlertCreated 记录新建告警
func RecordAlertCreated(kind, severity string) {
	InitMetrics()
	AlertsCreatedTotal.WithLabelValues(kind, severity).Inc()
}

// RecordAlertResolved 记录处理告警
func RecordAlertResolved() {
	InitMetrics()
	AlertsResolvedTotal.Inc()
}

// RecordChecklistCreated 记录新建清单
func RecordChecklistCreated(source string) {
	InitMetrics()
	ChecklistsCreatedTotal.WithLabelValues(source).Inc()
}

// RecordPhotoUploaded 记录照片上传
func RecordPhotoUploaded() {
	InitMetrics()
	PhotosUploadedTotal.Inc()
}

// RecordExport 记录报表导出
func RecordExport(report, format string) {
	InitMetrics()
	ReportExportsTotal.WithLabelValues(report, format).Inc()
}

// =========================================
// 通用辅助函数
// =========================================

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
