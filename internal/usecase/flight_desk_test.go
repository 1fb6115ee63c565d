package usecase

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

func newTestDesk(t *testing.T) (*FlightDesk, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetricsWithRegisterer("flightdesk", prometheus.NewRegistry())
	desk := NewFlightDesk([]string{PrimaryRegistry, SecondaryRegistry}, nil, logger.NewNopLogger(), m)
	return desk, m
}

func flightKeys(flights []entity.Flight) []entity.FlightKey {
	out := make([]entity.FlightKey, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.Key())
	}
	return out
}

func TestParseSetOperation(t *testing.T) {
	tests := []struct {
		input   string
		want    SetOperation
		wantErr bool
	}{
		{"union", OpUnion, false},
		{" Intersection ", OpIntersection, false},
		{"difference", OpDifference, false},
		{"symmetric-difference", OpSymmetricDifference, false},
		{"symdiff", OpSymmetricDifference, false},
		{"product", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSetOperation(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownSetOperation, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestFlightDeskUnknownRegistry(t *testing.T) {
	desk, _ := newTestDesk(t)

	err := desk.Insert("tertiary", entity.NewFlight("X", 1, 0, "0000", "", ""))
	assert.ErrorIs(t, err, ErrRegistryNotFound)

	_, err = desk.Compare(OpUnion, PrimaryRegistry, "tertiary")
	assert.ErrorIs(t, err, ErrRegistryNotFound)

	_, _, err = desk.LongestDelay("tertiary")
	assert.ErrorIs(t, err, ErrRegistryNotFound)
}

func TestFlightDeskOperations(t *testing.T) {
	desk, m := newTestDesk(t)

	require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10))))
	require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10))))
	require.NoError(t, desk.Insert(SecondaryRegistry, entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public")))

	n, err := desk.Count(PrimaryRegistry)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrySize.WithLabelValues(PrimaryRegistry)))

	ok, err := desk.Update(PrimaryRegistry, 101, "0800", "Delayed", 30)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = desk.Update(PrimaryRegistry, 999, "0800", "Delayed", 30)
	require.NoError(t, err)
	assert.False(t, ok)

	f, found, err := desk.Find(PrimaryRegistry, 101, "0800")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Delayed", f.Status())

	removed, err := desk.Deduplicate(PrimaryRegistry)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrySize.WithLabelValues(PrimaryRegistry)))

	union, err := desk.Compare(OpUnion, PrimaryRegistry, SecondaryRegistry)
	require.NoError(t, err)
	want := []entity.FlightKey{{ID: 101, ArrivalTime: "0800"}, {ID: 102, ArrivalTime: "0900"}}
	if diff := cmp.Diff(want, flightKeys(union)); diff != "" {
		t.Errorf("Compare(union) mismatch (-want +got):\n%s", diff)
	}

	ok, err = desk.Delete(SecondaryRegistry, 102, "0900")
	require.NoError(t, err)
	assert.True(t, ok)

	empty, err := desk.IsEmpty(SecondaryRegistry)
	require.NoError(t, err)
	assert.True(t, empty)

	_, ok, err = desk.LongestDelay(SecondaryRegistry)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("insert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("update", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("union", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryOperations.WithLabelValues("longest_delay", "empty")))
}

func TestFlightDeskCompareAllOperations(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("British Airways", 103, 180, "1000", "1200", "Business")))
	require.NoError(t, desk.Insert(SecondaryRegistry, entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public")))

	wantLen := map[SetOperation]int{
		OpUnion:               2,
		OpIntersection:        0,
		OpDifference:          1,
		OpSymmetricDifference: 2,
	}
	for _, op := range SetOperations {
		got, err := desk.Compare(op, PrimaryRegistry, SecondaryRegistry)
		require.NoError(t, err)
		assert.Len(t, got, wantLen[op], "operation %s", op)
	}

	_, err := desk.Compare(SetOperation("product"), PrimaryRegistry, SecondaryRegistry)
	assert.ErrorIs(t, err, ErrUnknownSetOperation)
}

func TestFlightDeskCompareSameRegistry(t *testing.T) {
	desk, _ := newTestDesk(t)
	require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP")))

	got, err := desk.Compare(OpDifference, PrimaryRegistry, PrimaryRegistry)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFlightDeskConcurrentAccess(t *testing.T) {
	desk, _ := newTestDesk(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = desk.Insert(PrimaryRegistry, entity.NewFlight("P", id, 0, "0800", "", ""))
			_ = desk.Insert(SecondaryRegistry, entity.NewFlight("S", id, 0, "0800", "", ""))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = desk.Compare(OpUnion, PrimaryRegistry, SecondaryRegistry)
			_, _ = desk.Compare(OpIntersection, SecondaryRegistry, PrimaryRegistry)
		}()
	}
	wg.Wait()

	union, err := desk.Compare(OpUnion, PrimaryRegistry, SecondaryRegistry)
	require.NoError(t, err)
	assert.Len(t, union, 20)
}

func TestFlightDeskNames(t *testing.T) {
	desk, _ := newTestDesk(t)
	assert.Equal(t, []string{PrimaryRegistry, SecondaryRegistry}, desk.Names())
}
