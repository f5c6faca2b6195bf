package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/almanac/internal/julian"
	"github.com/papapumpkin/almanac/internal/solarterm"
)

// solarTermsInput is the input schema for the solar_terms tool.
type solarTermsInput struct {
	Year          int    `json:"year" jsonschema:"Gregorian year"`
	Method        string `json:"method,omitempty" jsonschema:"Root finder: newton or bisect; defaults to the server's"`
	OffsetMinutes *int   `json:"utc_offset_minutes,omitempty" jsonschema:"Zone offset for the local instants; defaults to 540 (JST)"`
}

// termEntry is one term occurrence in the solar_terms response.
type termEntry struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Pinyin    string  `json:"pinyin"`
	Longitude float64 `json:"longitude"`
	Node      bool    `json:"node"`
	JD        float64 `json:"jd"`
	UTC       string  `json:"utc"`
	Local     string  `json:"local"`
}

// solarTermsOutput is the output schema for the solar_terms tool.
type solarTermsOutput struct {
	Year   int         `json:"year"`
	Method string      `json:"method"`
	Terms  []termEntry `json:"terms"`
}

// registerTermTools registers the solar_terms MCP tool.
func (s *Server) registerTermTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "solar_terms",
		Description: "List the 24 solar-term instants of a Gregorian year",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input solarTermsInput) (_ *mcp.CallToolResult, _ solarTermsOutput, err error) {
		defer func(start time.Time) { s.record("solar_terms", start, err) }(time.Now())

		if input.Year == 0 {
			return nil, solarTermsOutput{}, fmt.Errorf("year is required")
		}
		offset := s.offset
		if input.OffsetMinutes != nil {
			offset = *input.OffsetMinutes
		}

		calc := s.engine.Terms()
		if input.Method != "" {
			m, err := solarterm.ParseMethod(input.Method)
			if err != nil {
				return nil, solarTermsOutput{}, err
			}
			if m != calc.Method() {
				calc = solarterm.NewCalculator(solarterm.WithMethod(m))
			}
		}

		occs, err := calc.YearTerms(input.Year)
		if err != nil {
			return nil, solarTermsOutput{}, err
		}
		out := solarTermsOutput{Year: input.Year, Method: calc.Method().String()}
		for _, o := range occs {
			out.Terms = append(out.Terms, termEntry{
				Index:     o.Term.Index,
				Name:      o.Term.Name,
				Pinyin:    o.Term.Pinyin,
				Longitude: o.Term.Longitude,
				Node:      o.Term.Node,
				JD:        float64(o.JD),
				UTC:       julian.ToCivil(o.JD).String(),
				Local:     julian.UTCToLocal(o.JD, offset).String(),
			})
		}
		return nil, out, nil
	})
}
