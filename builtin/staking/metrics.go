// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"

	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/metrics"
)

var (
	metricRequests = metrics.LazyLoadCounterVec("staking_requests_count", []string{"method", "result"})
	metricStaked   = metrics.LazyLoadGauge("staking_staked_count")
)

func observe(method string, err error) {
	result := "ok"
	if err != nil {
		var kind *reverts.ErrRevert
		if errors.As(err, &kind) {
			result = kind.Error()
		} else {
			result = "error"
		}
	}
	metricRequests().AddWithLabel(1, map[string]string{"method": method, "result": result})
}
