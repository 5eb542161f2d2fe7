// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveOperation("create", nil, 0)
	c.ObserveOperation("create", errors.New("boom"), 0)
	c.SetTableOccupancy(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() == "tecnicofs_operations_total" {
			found = true
			require.Len(t, fam.Metric, 2)
		}
	}
	require.True(t, found)
}
