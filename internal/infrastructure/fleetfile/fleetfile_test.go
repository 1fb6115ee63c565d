package fleetfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk-service/internal/domain/entity"
)

const primaryFleet = `
name = "primary"

[[flights]]
name = "Air India"
id = 101
capacity = 150
arrival = "0800"
departure = "1000"
class = "VIP"
delay = 10

[[flights]]
name = "Emirates"
id = 102
capacity = 200
arrival = "0900"
departure = "1100"
class = "Public"
status = "Boarding"
`

func TestDecode(t *testing.T) {
	fleet, err := Decode(strings.NewReader(primaryFleet))
	require.NoError(t, err)

	assert.Equal(t, "primary", fleet.Name)
	flights := fleet.Entities()
	require.Len(t, flights, 2)

	assert.Equal(t, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10)), flights[0])
	assert.Equal(t, entity.DefaultStatus, flights[0].Status())
	assert.Equal(t, "Boarding", flights[1].Status())
	assert.Equal(t, 0, flights[1].Delay())
}

func TestDecodeValidation(t *testing.T) {
	doc := `
[[flights]]
name = ""
id = 0
capacity = -1
arrival = ""

[[flights]]
name = "Fine"
id = 7
arrival = "0700"

[[flights]]
name = "Late"
id = 8
arrival = "0800"
delay = -3
`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFlight)

	msg := err.Error()
	assert.Contains(t, msg, "index 0")
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "id must be positive")
	assert.Contains(t, msg, "capacity must not be negative")
	assert.Contains(t, msg, "arrival is required")
	assert.Contains(t, msg, "index 2")
	assert.NotContains(t, msg, "index 1")
}

func TestDecodeRejectsWrongTypes(t *testing.T) {
	_, err := Decode(strings.NewReader("[[flights]]\nname = \"X\"\nid = \"one-oh-one\"\narrival = \"0800\"\n"))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[[flights]]\nname = \"X\"\nid = 1\narrival = \"0800\"\ngate = \"B12\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flights.gate")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primary.toml")
	require.NoError(t, os.WriteFile(path, []byte(primaryFleet), 0o644))

	fleet, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, fleet.Flights, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
