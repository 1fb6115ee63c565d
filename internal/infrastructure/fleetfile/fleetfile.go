// Package fleetfile loads flights from TOML documents. It is the boundary
// where untrusted input is checked before flights are built.
package fleetfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"flightdesk-service/internal/domain/entity"
)

// ErrInvalidFlight marks a flight entry that failed validation
var ErrInvalidFlight = errors.New("invalid flight")

// Fleet is the decoded form of a fleet file:
//
//	name = "primary"
//
//	[[flights]]
//	name = "Air India"
//	id = 101
//	capacity = 150
//	arrival = "0800"
//	departure = "1000"
//	class = "VIP"
//	delay = 10
type Fleet struct {
	Name    string              `toml:"name"`
	Flights []entity.FlightView `toml:"flights"`
}

// Load reads and validates the fleet file at path
func Load(path string) (*Fleet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fleet file: %w", err)
	}
	defer f.Close()

	fleet, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fleet, nil
}

// Decode parses and validates a fleet document
func Decode(r io.Reader) (*Fleet, error) {
	var fleet Fleet
	md, err := toml.NewDecoder(r).Decode(&fleet)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fleet: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown fleet keys: %s", strings.Join(keys, ", "))
	}

	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	return &fleet, nil
}

// Validate checks every flight entry and reports all problems at once
func (f *Fleet) Validate() error {
	var errs []error
	for i, v := range f.Flights {
		var problems []string
		if strings.TrimSpace(v.Name) == "" {
			problems = append(problems, "name is required")
		}
		if v.ID <= 0 {
			problems = append(problems, fmt.Sprintf("id must be positive, got %d", v.ID))
		}
		if v.Capacity < 0 {
			problems = append(problems, fmt.Sprintf("capacity must not be negative, got %d", v.Capacity))
		}
		if v.Delay < 0 {
			problems = append(problems, fmt.Sprintf("delay must not be negative, got %d", v.Delay))
		}
		if strings.TrimSpace(v.ArrivalTime) == "" {
			problems = append(problems, "arrival is required")
		}

		if len(problems) > 0 {
			errs = append(errs, fmt.Errorf("%w at index %d: %s", ErrInvalidFlight, i, strings.Join(problems, "; ")))
		}
	}
	return errors.Join(errs...)
}

// Entities builds the flights described by the fleet
func (f *Fleet) Entities() []entity.Flight {
	flights := make([]entity.Flight, 0, len(f.Flights))
	for _, v := range f.Flights {
		flights = append(flights, v.Flight())
	}
	return flights
}
