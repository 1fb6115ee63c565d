package usecase

import (
	"context"
	"fmt"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/pkg/logger"
)

// Presenter renders the outcome of each desk operation
type Presenter interface {
	Banner(title string)
	Inserted()
	Updated(ok bool)
	Deleted(ok bool)
	FlightTable(registryName string, flights []entity.Flight)
	LongestDelay(f entity.Flight, ok bool)
	Count(registryName string, n int)
	Deduplicated(registryName string, flights []entity.Flight)
	SetResult(title string, flights []entity.Flight)
	Emptiness(registryName string, empty bool)
	Separator()
	Err() error
}

// SetOperationTitle returns the heading used when presenting op
func SetOperationTitle(op SetOperation) string {
	switch op {
	case OpUnion:
		return "Union of lists"
	case OpIntersection:
		return "Intersection of lists"
	case OpDifference:
		return "Difference of lists"
	case OpSymmetricDifference:
		return "Symmetric Difference of lists"
	}
	return string(op)
}

type demoStep struct {
	name string
	run  func() error
}

// DemoScenario plays the fixed demonstration sequence against the primary and
// secondary registries of a desk
type DemoScenario struct {
	desk      *FlightDesk
	presenter Presenter
	logger    logger.Logger
}

// NewDemoScenario creates a demo over desk. The desk must hold the primary and
// secondary registries.
func NewDemoScenario(desk *FlightDesk, presenter Presenter, logger logger.Logger) *DemoScenario {
	return &DemoScenario{
		desk:      desk,
		presenter: presenter,
		logger:    logger,
	}
}

// Run executes every step in order, stopping at the first error or when ctx
// is cancelled
func (s *DemoScenario) Run(ctx context.Context) error {
	s.logger.Info("Starting demo scenario")

	for i, step := range s.steps() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(); err != nil {
			s.logger.Error("Demo step failed", "step", i, "name", step.name, "error", err)
			return fmt.Errorf("demo step %q: %w", step.name, err)
		}
		if err := s.presenter.Err(); err != nil {
			return fmt.Errorf("demo step %q: write output: %w", step.name, err)
		}
	}

	s.logger.Info("Demo scenario finished")
	return nil
}

func (s *DemoScenario) steps() []demoStep {
	p := s.presenter
	return []demoStep{
		{"banner", func() error {
			p.Banner("-------------------------- FLIGHT MANAGEMENT SYSTEM --------------------------")
			return nil
		}},
		{"insert air india", s.insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10)), true)},
		{"insert emirates", s.insert(PrimaryRegistry, entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public", entity.WithDelay(20)), true)},
		{"insert duplicate air india", s.insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP", entity.WithDelay(10)), true)},
		{"display primary", s.display(PrimaryRegistry)},
		{"longest delay", func() error {
			f, ok, err := s.desk.LongestDelay(PrimaryRegistry)
			if err != nil {
				return err
			}
			p.LongestDelay(f, ok)
			p.Separator()
			return nil
		}},
		{"count", func() error {
			n, err := s.desk.Count(PrimaryRegistry)
			if err != nil {
				return err
			}
			p.Count(PrimaryRegistry, n)
			p.Separator()
			return nil
		}},
		{"update air india", func() error {
			ok, err := s.desk.Update(PrimaryRegistry, 101, "0800", "Delayed", 30)
			if err != nil {
				return err
			}
			p.Updated(ok)
			p.Separator()
			return nil
		}},
		{"delete emirates", func() error {
			ok, err := s.desk.Delete(PrimaryRegistry, 102, "0900")
			if err != nil {
				return err
			}
			p.Deleted(ok)
			p.Separator()
			return nil
		}},
		{"display primary after changes", s.display(PrimaryRegistry)},
		{"insert british airways", s.insert(SecondaryRegistry, entity.NewFlight("British Airways", 103, 180, "1000", "1200", "Business", entity.WithDelay(5)), false)},
		{"insert emirates into secondary", s.insert(SecondaryRegistry, entity.NewFlight("Emirates", 102, 200, "0900", "1100", "Public", entity.WithDelay(25)), true)},
		{"display secondary", s.display(SecondaryRegistry)},
		{"deduplicate primary", func() error {
			if _, err := s.desk.Deduplicate(PrimaryRegistry); err != nil {
				return err
			}
			flights, err := s.desk.Flights(PrimaryRegistry)
			if err != nil {
				return err
			}
			p.Deduplicated(PrimaryRegistry, flights)
			p.Separator()
			return nil
		}},
		{"union", s.compare(OpUnion)},
		{"symmetric difference", s.compare(OpSymmetricDifference)},
		{"emptiness", func() error {
			empty, err := s.desk.IsEmpty(PrimaryRegistry)
			if err != nil {
				return err
			}
			p.Emptiness(PrimaryRegistry, empty)
			p.Separator()
			return nil
		}},
	}
}

func (s *DemoScenario) insert(name string, f entity.Flight, separate bool) func() error {
	return func() error {
		if err := s.desk.Insert(name, f); err != nil {
			return err
		}
		s.presenter.Inserted()
		if separate {
			s.presenter.Separator()
		}
		return nil
	}
}

func (s *DemoScenario) display(name string) func() error {
	return func() error {
		flights, err := s.desk.Flights(name)
		if err != nil {
			return err
		}
		s.presenter.FlightTable(name, flights)
		s.presenter.Separator()
		return nil
	}
}

func (s *DemoScenario) compare(op SetOperation) func() error {
	return func() error {
		flights, err := s.desk.Compare(op, PrimaryRegistry, SecondaryRegistry)
		if err != nil {
			return err
		}
		s.presenter.SetResult(SetOperationTitle(op), flights)
		s.presenter.Separator()
		return nil
	}
}
