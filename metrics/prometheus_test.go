// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("submits").Add(1)
	Counter("submits").Add(2)

	countVec := CounterVec("outcomes", []string{"zeroOrOne"})
	gaugeVec := GaugeVec("levels", []string{"zeroOrOne"})
	hist := Histogram("latency", BucketSubmit)

	total := 0
	for i := range 10 {
		labels := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		countVec.AddWithLabel(int64(i), labels)
		gaugeVec.AddWithLabel(int64(i), labels)
		hist.Observe(int64(i))
		total += i
	}
	Gauge("staked").Set(7)
	Gauge("staked").Add(-2)

	got := gather(t)
	require.Equal(t, float64(3), got["keel_metrics_submits"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), got["keel_metrics_staked"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(total), got["keel_metrics_latency"].Metric[0].GetHistogram().GetSampleSum())

	sumCount := got["keel_metrics_outcomes"].Metric[0].GetCounter().GetValue() +
		got["keel_metrics_outcomes"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(total), sumCount)

	sumGauge := got["keel_metrics_levels"].Metric[0].GetGauge().GetValue() +
		got["keel_metrics_levels"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(total), sumGauge)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)

	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
}
