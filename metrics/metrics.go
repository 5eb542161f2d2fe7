// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics implements engine.Metrics with Prometheus
// collectors, grounded on gcsfuse's use of client_golang to expose
// filesystem-operation counters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is an engine.Metrics implementation. Register it with a
// prometheus.Registerer before wiring it into an engine.Engine.
type Collector struct {
	operations *prometheus.CounterVec
	occupancy  prometheus.Gauge
}

// NewCollector builds a Collector with its metrics pre-registered
// against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tecnicofs_operations_total",
			Help: "Number of tree operations processed, by verb and result.",
		}, []string{"verb", "result"}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tecnicofs_inode_table_occupancy",
			Help: "Number of inode table slots currently allocated.",
		}),
	}
	reg.MustRegister(c.operations, c.occupancy)
	return c
}

// ObserveOperation implements engine.Metrics.
func (c *Collector) ObserveOperation(verb string, err error, _ time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.operations.WithLabelValues(verb, result).Inc()
}

// SetTableOccupancy implements engine.Metrics.
func (c *Collector) SetTableOccupancy(n int) {
	c.occupancy.Set(float64(n))
}
