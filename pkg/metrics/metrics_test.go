package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 重复初始化不会重复注册（promauto重复注册会panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil || HTTPRequestsInProgress == nil {
		t.Fatal("HTTP指标未初始化")
	}
	if QuantityChangesTotal == nil || AlertsCreatedTotal == nil || ChecklistsCreatedTotal == nil {
		t.Fatal("业务指标未初始化")
	}
}

// TestRecordQuantityChange 数量变更计数与耗时
func TestRecordQuantityChange(t *testing.T) {
	InitMetrics()
	success := QuantityChangesTotal.WithLabelValues("success")

	before := getCounterValue(t, success)
	beforeCount := getHistogramCount(t, QuantityChangeDuration)

	RecordQuantityChange("success", 12*time.Millisecond)
	RecordQuantityChange("success", 3*time.Millisecond)
	RecordQuantityChange("conflict", time.Millisecond)

	if got := getCounterValue(t, success) - before; got != 2 {
		t.Errorf("success计数错误: expected=2, got=%f", got)
	}
	if got := getHistogramCount(t, QuantityChangeDuration) - beforeCount; got != 3 {
		t.Errorf("耗时观测次数错误: expected=3, got=%d", got)
	}
}

// TestRecordAlertCreated 告警按类型和级别计数
func TestRecordAlertCreated(t *testing.T) {
	labels := map[string]string{"kind": "low_stock", "severity": "high"}
	InitMetrics()
	before := getCounterVecValue(t, AlertsCreatedTotal, labels)

	RecordAlertCreated("low_stock", "high")
	RecordAlertCreated("low_stock", "medium")

	if got := getCounterVecValue(t, AlertsCreatedTotal, labels) - before; got != 1 {
		t.Errorf("告警计数错误: expected=1, got=%f", got)
	}
}

// TestBusinessCounters 其他业务计数器
func TestBusinessCounters(t *testing.T) {
	InitMetrics()
	resolved := getCounterValue(t, AlertsResolvedTotal)
	photos := getCounterValue(t, PhotosUploadedTotal)
	retries := getCounterValue(t, QuantityChangeRetriesTotal)
	login := getCounterVecValue(t, ChecklistsCreatedTotal, map[string]string{"source": "login"})
	pdf := getCounterVecValue(t, ReportExportsTotal, map[string]string{"report": "inventory", "format": "pdf"})

	RecordAlertResolved()
	RecordPhotoUploaded()
	RecordQuantityChangeRetry()
	RecordChecklistCreated("login")
	RecordExport("inventory", "pdf")

	if getCounterValue(t, AlertsResolvedTotal)-resolved != 1 {
		t.Error("AlertsResolvedTotal未递增")
	}
	if getCounterValue(t, PhotosUploadedTotal)-photos != 1 {
		t.Error("PhotosUploadedTotal未递增")
	}
	if getCounterValue(t, QuantityChangeRetriesTotal)-retries != 1 {
		t.Error("QuantityChangeRetriesTotal未递增")
	}
	if getCounterVecValue(t, ChecklistsCreatedTotal, map[string]string{"source": "login"})-login != 1 {
		t.Error("ChecklistsCreatedTotal未递增")
	}
	if getCounterVecValue(t, ReportExportsTotal, map[string]string{"report": "inventory", "format": "pdf"})-pdf != 1 {
		t.Error("ReportExportsTotal未递增")
	}
}

// TestHTTPHelpers HTTP指标辅助函数
func TestHTTPHelpers(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "path": "/api/v1/ping", "status": "200"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)
	gauge := getGaugeValue(t, HTTPRequestsInProgress)

	IncGauge(HTTPRequestsInProgress)
	if getGaugeValue(t, HTTPRequestsInProgress)-gauge != 1 {
		t.Error("Gauge未递增")
	}
	DecGauge(HTTPRequestsInProgress)

	IncCounterVec(HTTPRequestsTotal, labels)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/v1/ping"}, 0.02)

	if getCounterVecValue(t, HTTPRequestsTotal, labels)-before != 1 {
		t.Error("HTTPRequestsTotal未递增")
	}
	if getGaugeValue(t, HTTPRequestsInProgress) != gauge {
		t.Error("Gauge未恢复")
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	return getCounterValue(t, counterVec.With(labels))
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	t.Helper()
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
