package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/almanac/internal/chart"
)

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("lat", 0, "observer latitude in degrees north")
	cmd.Flags().Float64("lon", 0, "observer longitude in degrees east")
}

// locationFlags overlays --lat/--lon on the configured location. A lone
// --lon keeps the configured latitude, or the equator when none is set.
func locationFlags(cmd *cobra.Command, configured *chart.Location) (*chart.Location, error) {
	latSet := cmd.Flags().Changed("lat")
	lonSet := cmd.Flags().Changed("lon")
	if !latSet && !lonSet {
		return configured, nil
	}

	var loc chart.Location
	if configured != nil {
		loc = *configured
	} else if latSet && !lonSet {
		return nil, fmt.Errorf("--lat needs --lon")
	}
	if latSet {
		loc.Latitude, _ = cmd.Flags().GetFloat64("lat")
	}
	if lonSet {
		loc.Longitude, _ = cmd.Flags().GetFloat64("lon")
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return &loc, nil
}
