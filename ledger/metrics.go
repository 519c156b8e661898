// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/keelstake/keel/metrics"

var (
	metricTxCounter  = metrics.LazyLoadCounterVec("ledger_tx_count", []string{"outcome"})
	metricTxDuration = metrics.LazyLoadHistogram("ledger_tx_duration_ms", metrics.BucketSubmit)
	metricHead       = metrics.LazyLoadGauge("ledger_head_number")
)
