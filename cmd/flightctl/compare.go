package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flightdesk-service/internal/infrastructure/fleetfile"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/templates"
)

var (
	compareLeft   string
	compareRight  string
	compareOp     string
	compareDedupe bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two fleet files",
	Long: `Compare loads two TOML fleet files into separate registries and prints
the result of a set operation between them.

Operations: union, intersection, difference, symmetric_difference (symdiff),
or all.

Examples:
  flightctl compare --left a.toml --right b.toml --op union
  flightctl compare --left a.toml --right b.toml --dedupe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := parseOps(compareOp)
		if err != nil {
			return err
		}

		log := logger.NewNopLogger()
		desk := usecase.NewFlightDesk([]string{usecase.PrimaryRegistry, usecase.SecondaryRegistry}, nil, log, nil)

		if err := loadFleet(desk, usecase.PrimaryRegistry, compareLeft); err != nil {
			return err
		}
		if err := loadFleet(desk, usecase.SecondaryRegistry, compareRight); err != nil {
			return err
		}

		renderer := templates.NewFlightTableRenderer(cmd.OutOrStdout(), nil)
		for _, name := range desk.Names() {
			if compareDedupe {
				if _, err := desk.Deduplicate(name); err != nil {
					return err
				}
			}
			flights, err := desk.Flights(name)
			if err != nil {
				return err
			}
			renderer.Banner(strings.ToUpper(name))
			renderer.FlightTable(name, flights)
		}

		for _, op := range ops {
			flights, err := desk.Compare(op, usecase.PrimaryRegistry, usecase.SecondaryRegistry)
			if err != nil {
				return err
			}
			renderer.SetResult(usecase.SetOperationTitle(op), flights)
			renderer.Separator()
		}
		return renderer.Err()
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareLeft, "left", "", "Fleet file loaded into the primary registry")
	compareCmd.Flags().StringVar(&compareRight, "right", "", "Fleet file loaded into the secondary registry")
	compareCmd.Flags().StringVar(&compareOp, "op", "all", "Set operation to apply")
	compareCmd.Flags().BoolVar(&compareDedupe, "dedupe", false, "Deduplicate both registries before comparing")
	compareCmd.MarkFlagRequired("left")
	compareCmd.MarkFlagRequired("right")
}

func parseOps(s string) ([]usecase.SetOperation, error) {
	if strings.EqualFold(s, "all") {
		return usecase.SetOperations, nil
	}
	op, err := usecase.ParseSetOperation(s)
	if err != nil {
		return nil, err
	}
	return []usecase.SetOperation{op}, nil
}

func loadFleet(desk *usecase.FlightDesk, name, path string) error {
	fleet, err := fleetfile.Load(path)
	if err != nil {
		return fmt.Errorf("load %s registry: %w", name, err)
	}
	for _, f := range fleet.Entities() {
		if err := desk.Insert(name, f); err != nil {
			return err
		}
	}
	return nil
}
