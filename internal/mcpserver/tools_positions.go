package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/julian"
)

// positionsInput is the input schema for the positions tool.
type positionsInput struct {
	Datetime      string   `json:"datetime" jsonschema:"Local date and time as YYYY-MM-DD HH:MM"`
	OffsetMinutes *int     `json:"utc_offset_minutes,omitempty" jsonschema:"Zone offset east of UTC in minutes; defaults to 540 (JST)"`
	Ayanamsa      string   `json:"ayanamsa,omitempty" jsonschema:"Sidereal mode: lahiri, krishnamurti or raman"`
	Latitude      *float64 `json:"latitude,omitempty" jsonschema:"Observer latitude in degrees north; enables house angles"`
	Longitude     *float64 `json:"longitude,omitempty" jsonschema:"Observer longitude in degrees east; enables house angles"`
}

// positionsOutput is the output schema for the positions tool.
type positionsOutput struct {
	UTC            string               `json:"utc"`
	JD             float64              `json:"jd"`
	Ayanamsa       string               `json:"ayanamsa"`
	AyanamsaOffset float64              `json:"ayanamsa_offset"`
	Bodies         []chart.BodyPosition `json:"bodies"`
	Angles         *chart.Angles        `json:"angles,omitempty"`
}

// registerPositionTools registers the positions MCP tool.
func (s *Server) registerPositionTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "positions",
		Description: "Tropical and sidereal longitudes of the Sun, Moon, planets and nodes, plus house angles for a location",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input positionsInput) (_ *mcp.CallToolResult, _ positionsOutput, err error) {
		defer func(start time.Time) { s.record("positions", start, err) }(time.Now())

		r, err := s.parse(readingInput{
			Datetime:      input.Datetime,
			OffsetMinutes: input.OffsetMinutes,
			Ayanamsa:      input.Ayanamsa,
			Latitude:      input.Latitude,
			Longitude:     input.Longitude,
		})
		if err != nil {
			return nil, positionsOutput{}, err
		}
		jd := julian.FromCivil(r.local, r.offset)
		sky := chart.SkyAt(jd, r.ayanamsa, r.location)
		return nil, positionsOutput{
			UTC:            julian.ToCivil(jd).String(),
			JD:             float64(jd),
			Ayanamsa:       sky.Ayanamsa,
			AyanamsaOffset: sky.AyanamsaOffset,
			Bodies:         sky.Bodies,
			Angles:         sky.Angles,
		}, nil
	})
}
