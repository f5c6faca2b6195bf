package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
)

// fourPillarsInput is the input schema for the four_pillars tool.
type fourPillarsInput struct {
	Datetime      string   `json:"datetime" jsonschema:"Local birth date and time as YYYY-MM-DD HH:MM"`
	OffsetMinutes *int     `json:"utc_offset_minutes,omitempty" jsonschema:"Zone offset east of UTC in minutes; defaults to 540 (JST)"`
	DayBoundary   string   `json:"day_boundary,omitempty" jsonschema:"midnight or rollover23"`
	Gender        string   `json:"gender,omitempty" jsonschema:"male or female; selects the gua formula"`
	Latitude      *float64 `json:"latitude,omitempty" jsonschema:"Observer latitude in degrees north"`
	Longitude     *float64 `json:"longitude,omitempty" jsonschema:"Observer longitude in degrees east"`
	TrueSolarTime bool     `json:"true_solar_time,omitempty" jsonschema:"Read the day and hour from local apparent solar time; needs latitude and longitude"`
}

// pillarEntry is one pillar in the four_pillars response.
type pillarEntry struct {
	Ganzhi string `json:"ganzhi"`
	Pinyin string `json:"pinyin"`
	Index  int    `json:"index"`
	// Hidden is the hidden stem in force and Phase its position.
	Hidden string `json:"hidden"`
	Phase  string `json:"phase"`
}

// solarTimeEntry is the true-solar-time breakdown.
type solarTimeEntry struct {
	Mean                string  `json:"mean"`
	Apparent            string  `json:"apparent"`
	LongitudeCorrection float64 `json:"longitude_correction_minutes"`
	EquationOfTime      float64 `json:"equation_of_time_minutes"`
}

// fourPillarsOutput is the output schema for the four_pillars tool.
type fourPillarsOutput struct {
	Year          pillarEntry     `json:"year"`
	Month         pillarEntry     `json:"month"`
	Day           pillarEntry     `json:"day"`
	Hour          pillarEntry     `json:"hour"`
	Void          []string        `json:"void"`
	Node          string          `json:"node"`
	DaysSinceNode float64         `json:"days_since_node"`
	DayRolledOver bool            `json:"day_rolled_over"`
	UTC           string          `json:"utc"`
	JD            float64         `json:"jd"`
	NineStar      nineStarOutput  `json:"nine_star"`
	SolarTime     *solarTimeEntry `json:"solar_time,omitempty"`
}

func newPillarEntry(p ganzhi.Pillar, h ganzhi.Hidden) pillarEntry {
	return pillarEntry{
		Ganzhi: p.String(),
		Pinyin: p.Pinyin(),
		Index:  p.Index(),
		Hidden: h.Active.String(),
		Phase:  h.Phase.String(),
	}
}

func newFourPillarsOutput(res chart.Result) fourPillarsOutput {
	fp := res.Pillars
	out := fourPillarsOutput{
		Year:          newPillarEntry(fp.Year, res.Hidden.Year),
		Month:         newPillarEntry(fp.Month, res.Hidden.Month),
		Day:           newPillarEntry(fp.Day, res.Hidden.Day),
		Hour:          newPillarEntry(fp.Hour, res.Hidden.Hour),
		Void:          []string{res.Void[0].String(), res.Void[1].String()},
		Node:          fp.NodeName,
		DaysSinceNode: fp.DaysSinceNode,
		DayRolledOver: fp.DayRolledOver,
		UTC:           res.UTC.String(),
		JD:            float64(res.JD),
		NineStar:      newNineStarOutput(res.NineStar),
	}
	if st := res.SolarTime; st != nil {
		out.SolarTime = &solarTimeEntry{
			Mean:                st.Mean.String(),
			Apparent:            st.Apparent.String(),
			LongitudeCorrection: st.LongitudeCorrection,
			EquationOfTime:      st.EquationOfTime,
		}
	}
	return out
}

// registerPillarTools registers the four_pillars MCP tool.
func (s *Server) registerPillarTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "four_pillars",
		Description: "Compute the four pillars, hidden stems, void branches and nine-star profile of a birth instant",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input fourPillarsInput) (_ *mcp.CallToolResult, _ fourPillarsOutput, err error) {
		defer func(start time.Time) { s.record("four_pillars", start, err) }(time.Now())

		r, err := s.parse(readingInput{
			Datetime:      input.Datetime,
			OffsetMinutes: input.OffsetMinutes,
			Boundary:      input.DayBoundary,
			Gender:        input.Gender,
			Latitude:      input.Latitude,
			Longitude:     input.Longitude,
		})
		if err != nil {
			return nil, fourPillarsOutput{}, err
		}
		res, err := s.engine.Compute(r.query(input.TrueSolarTime))
		if err != nil {
			return nil, fourPillarsOutput{}, err
		}
		return nil, newFourPillarsOutput(res), nil
	})
}
