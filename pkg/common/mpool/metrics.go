// Copyright 2021 - 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mpool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EnableMetrics registers pool counters with the given registerer.
// The collectors read the pool's atomics directly, there is no
// per-allocation overhead beyond what the pool already pays.
func (m *MPool) EnableMetrics(reg prometheus.Registerer) error {
	labels := prometheus.Labels{"pool": m.name}

	allocated := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name:        "movec_mpool_allocated_bytes_total",
		Help:        "Total bytes handed out by the pool.",
		ConstLabels: labels,
	}, func() float64 {
		return float64(m.allocBytes.Load())
	})

	inuse := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "movec_mpool_inuse_bytes",
		Help:        "Bytes currently held by live blocks.",
		ConstLabels: labels,
	}, func() float64 {
		return float64(m.inuseBytes.Load())
	})

	inuseBlocks := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "movec_mpool_inuse_blocks",
		Help:        "Blocks allocated and not yet freed.",
		ConstLabels: labels,
	}, func() float64 {
		return float64(m.allocCnt.Load() - m.freeCnt.Load())
	})

	for _, c := range []prometheus.Collector{allocated, inuse, inuseBlocks} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
