package templates

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/registry"
)

func TestFlightTable(t *testing.T) {
	var buf bytes.Buffer
	var events []entity.FlightEvent
	r := NewFlightTableRenderer(&buf, registry.NotifierFunc(func(e entity.FlightEvent) {
		events = append(events, e)
	}))

	r.FlightTable("primary", []entity.Flight{
		entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10)),
	})
	require.NoError(t, r.Err())

	want := "Flight Name         ID        Capacity  Arrival        Departure      Class          Status    Delay (mins)\n" +
		strings.Repeat("-", 112) + "\n" +
		"Air India           101       150       0800           1000           VIP            On time   10        \n" +
		"\n"
	assert.Equal(t, want, buf.String())

	require.Len(t, events, 1)
	assert.Equal(t, entity.ActionDisplayed, events[0].Action)
	assert.Equal(t, "primary", events[0].Registry)
	assert.Equal(t, "Displayed flight list", events[0].Message)
}

func TestFlightTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	var events []entity.FlightEvent
	r := NewFlightTableRenderer(&buf, registry.NotifierFunc(func(e entity.FlightEvent) {
		events = append(events, e)
	}))

	r.FlightTable("secondary", nil)

	assert.Equal(t, "No flight records to display.\n", buf.String())
	require.Len(t, events, 1)
	assert.Equal(t, "Displayed flight list: No records to display", events[0].Message)
}

func TestOutcomeMessages(t *testing.T) {
	var buf bytes.Buffer
	r := NewFlightTableRenderer(&buf, nil)

	r.Inserted()
	r.Updated(true)
	r.Updated(false)
	r.Deleted(true)
	r.Deleted(false)
	r.LongestDelay(entity.Flight{}, false)
	r.Count("primary", 3)
	r.Emptiness("primary", false)
	r.Emptiness("secondary", true)
	require.NoError(t, r.Err())

	want := strings.Join([]string{
		"Flight inserted successfully.",
		"Flight(s) updated successfully.",
		"Flight not found for update.",
		"Flight deleted successfully.",
		"Flight not found.",
		"No flights available to find the longest delay.",
		"Number of flights in primary: 3",
		"Registry primary is not empty",
		"Registry secondary is empty",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSetResultRowsOnly(t *testing.T) {
	var buf bytes.Buffer
	r := NewFlightTableRenderer(&buf, nil)

	r.SetResult("Union of lists", []entity.Flight{
		entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public", entity.WithDelay(25)),
	})

	want := "Union of lists:\n" +
		"Emirates            102       200       0900           1100           Public         On time   25        \n"
	assert.Equal(t, want, buf.String())
}

func TestLongestDelayRow(t *testing.T) {
	var buf bytes.Buffer
	r := NewFlightTableRenderer(&buf, nil)

	r.LongestDelay(entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public", entity.WithDelay(20)), true)

	assert.True(t, strings.HasPrefix(buf.String(), "Flight with the longest delay:\nEmirates"))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestStickyWriteError(t *testing.T) {
	r := NewFlightTableRenderer(failingWriter{}, nil)

	r.Inserted()
	r.FlightTable("primary", []entity.Flight{entity.NewFlight("A", 1, 0, "0000", "", "")})

	assert.EqualError(t, r.Err(), "closed")
}
