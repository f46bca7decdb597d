package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mine/internal/definitions"
	"github.com/KirkDiggler/mine/internal/repositories/results"
)

// FixedTime is the creation time fixtures are stamped from
var FixedTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// CreateTestRecord creates a result record created offset after FixedTime
func CreateTestRecord(id string, offset time.Duration, winners ...string) *results.Record {
	return &results.Record{
		ID:        id,
		Scenario:  "skirmish",
		Seed:      1,
		Winners:   winners,
		Events:    24,
		Survivors: []string{},
		CreatedAt: FixedTime.Add(offset),
	}
}

// DefaultCatalog loads the embedded definitions, failing the test on error
func DefaultCatalog(t *testing.T) *definitions.Catalog {
	t.Helper()
	catalog, err := definitions.Default()
	require.NoError(t, err)
	return catalog
}
