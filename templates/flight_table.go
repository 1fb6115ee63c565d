package templates

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/registry"
)

const (
	headerFormat = "%-20s%-10s%-10s%-15s%-15s%-15s%-10s%-10s"
	ruleWidth    = 112
)

var tableTemplate = template.Must(template.New("flights").Funcs(template.FuncMap{
	"header": func() string {
		return fmt.Sprintf(headerFormat, "Flight Name", "ID", "Capacity", "Arrival", "Departure", "Class", "Status", "Delay (mins)")
	},
	"rule": func() string {
		return strings.Repeat("-", ruleWidth)
	},
}).Parse(`{{define "row"}}{{printf "%-20s%-10d%-10d%-15s%-15s%-15s%-10s%-10d" .Name .ID .Capacity .ArrivalTime .DepartureTime .Class .Status .Delay}}
{{end}}{{define "rows"}}{{range .}}{{template "row" .}}{{end}}{{end}}{{define "table"}}{{header}}
{{rule}}
{{template "rows" .}}
{{end}}`))

// FlightTableRenderer writes flights and operation outcomes as fixed-width
// console text. Write errors are sticky and reported by Err.
type FlightTableRenderer struct {
	w        io.Writer
	notifier registry.Notifier
	now      func() time.Time
	err      error
}

// NewFlightTableRenderer creates a renderer writing to w. notifier may be nil;
// when set, every table display is reported to it.
func NewFlightTableRenderer(w io.Writer, notifier registry.Notifier) *FlightTableRenderer {
	return &FlightTableRenderer{
		w:        w,
		notifier: notifier,
		now:      time.Now,
	}
}

// Err returns the first write error, if any
func (r *FlightTableRenderer) Err() error {
	return r.err
}

// Banner writes a title line followed by a blank line
func (r *FlightTableRenderer) Banner(title string) {
	r.printf("%s\n\n", title)
}

// Inserted reports a successful insert
func (r *FlightTableRenderer) Inserted() {
	r.printf("Flight inserted successfully.\n")
}

// Updated reports the outcome of an update
func (r *FlightTableRenderer) Updated(ok bool) {
	if ok {
		r.printf("Flight(s) updated successfully.\n")
		return
	}
	r.printf("Flight not found for update.\n")
}

// Deleted reports the outcome of a delete
func (r *FlightTableRenderer) Deleted(ok bool) {
	if ok {
		r.printf("Flight deleted successfully.\n")
		return
	}
	r.printf("Flight not found.\n")
}

// FlightTable writes the header, a rule and one row per flight
func (r *FlightTableRenderer) FlightTable(registryName string, flights []entity.Flight) {
	if len(flights) == 0 {
		r.printf("No flight records to display.\n")
		r.displayed(registryName, "Displayed flight list: No records to display")
		return
	}

	r.execute("table", views(flights))
	r.displayed(registryName, "Displayed flight list")
}

// LongestDelay writes the most delayed flight or the empty notice
func (r *FlightTableRenderer) LongestDelay(f entity.Flight, ok bool) {
	if !ok {
		r.printf("No flights available to find the longest delay.\n")
		return
	}
	r.printf("Flight with the longest delay:\n")
	r.execute("rows", views([]entity.Flight{f}))
}

// Count writes the number of flights held by a registry
func (r *FlightTableRenderer) Count(registryName string, n int) {
	r.printf("Number of flights in %s: %d\n", registryName, n)
}

// Deduplicated writes a registry after duplicate removal
func (r *FlightTableRenderer) Deduplicated(registryName string, flights []entity.Flight) {
	r.printf("List after removing duplicates:\n")
	r.FlightTable(registryName, flights)
}

// SetResult writes a titled list of flight rows without a header
func (r *FlightTableRenderer) SetResult(title string, flights []entity.Flight) {
	r.printf("%s:\n", title)
	r.execute("rows", views(flights))
}

// Emptiness reports whether a registry is empty
func (r *FlightTableRenderer) Emptiness(registryName string, empty bool) {
	if empty {
		r.printf("Registry %s is empty\n", registryName)
		return
	}
	r.printf("Registry %s is not empty\n", registryName)
}

// Separator writes a blank line
func (r *FlightTableRenderer) Separator() {
	r.printf("\n")
}

func (r *FlightTableRenderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *FlightTableRenderer) execute(name string, data []entity.FlightView) {
	if r.err != nil {
		return
	}
	r.err = tableTemplate.ExecuteTemplate(r.w, name, data)
}

func (r *FlightTableRenderer) displayed(registryName, message string) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(entity.FlightEvent{
		Registry:   registryName,
		Action:     entity.ActionDisplayed,
		Message:    message,
		OccurredAt: r.now(),
	})
}

func views(flights []entity.Flight) []entity.FlightView {
	out := make([]entity.FlightView, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.View())
	}
	return out
}
