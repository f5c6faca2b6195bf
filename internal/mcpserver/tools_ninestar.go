package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/almanac/internal/ninestar"
)

// nineStarInput is the input schema for the nine_star tool.
type nineStarInput struct {
	Datetime      string `json:"datetime" jsonschema:"Local date, optionally with a time, as YYYY-MM-DD HH:MM"`
	OffsetMinutes *int   `json:"utc_offset_minutes,omitempty" jsonschema:"Zone offset east of UTC in minutes; defaults to 540 (JST)"`
	Gender        string `json:"gender,omitempty" jsonschema:"male or female; selects the gua formula"`
	UserStar      int    `json:"user_star,omitempty" jsonschema:"Year star 1-9 of the person directions are graded for; defaults to the date's own year star"`
}

// directionEntry grades one compass direction.
type directionEntry struct {
	Direction string   `json:"direction"`
	YearStar  int      `json:"year_star"`
	MonthStar int      `json:"month_star"`
	DayStar   int      `json:"day_star"`
	Status    string   `json:"status"`
	Notes     []string `json:"notes,omitempty"`
}

// nineStarOutput is the output schema for the nine_star tool.
type nineStarOutput struct {
	TargetYear   int    `json:"target_year"`
	KigakuMonth  int    `json:"kigaku_month"`
	YearStar     int    `json:"year_star"`
	MonthStar    int    `json:"month_star"`
	DayStar      int    `json:"day_star"`
	Ascending    bool   `json:"ascending"`
	DayAnchor    string `json:"day_anchor"`
	AnchorPillar string `json:"anchor_pillar"`
	HourStar     int    `json:"hour_star"`
	Gender       string `json:"gender"`
	Gua          int    `json:"gua"`
	// Boards list the stars of the eight outer palaces clockwise from north.
	YearBoard  []int            `json:"year_board"`
	MonthBoard []int            `json:"month_board"`
	DayBoard   []int            `json:"day_board"`
	Directions []directionEntry `json:"directions"`
}

func newNineStarOutput(p ninestar.Profile) nineStarOutput {
	out := nineStarOutput{
		TargetYear:   p.TargetYear,
		KigakuMonth:  p.KigakuMonth,
		YearStar:     p.YearStar,
		MonthStar:    p.MonthStar,
		DayStar:      p.DayStar,
		Ascending:    p.Ascending,
		DayAnchor:    p.DayAnchor.DateString(),
		AnchorPillar: p.AnchorPillar.String(),
		HourStar:     p.HourStar,
		Gender:       p.Gender.String(),
		Gua:          p.Gua,
		YearBoard:    p.YearBoard.Stars[:],
		MonthBoard:   p.MonthBoard.Stars[:],
		DayBoard:     p.DayBoard.Stars[:],
		Directions:   make([]directionEntry, 0, len(p.Directions)),
	}
	for _, r := range p.Directions {
		out.Directions = append(out.Directions, directionEntry{
			Direction: r.Direction.String(),
			YearStar:  r.YearStar,
			MonthStar: r.MonthStar,
			DayStar:   r.DayStar,
			Status:    r.Status.String(),
			Notes:     r.Notes,
		})
	}
	return out
}

// registerNineStarTools registers the nine_star MCP tool.
func (s *Server) registerNineStarTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "nine_star",
		Description: "Compute the kigaku year, month, day and hour stars, the gua number and the graded direction boards for a local date",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input nineStarInput) (_ *mcp.CallToolResult, _ nineStarOutput, err error) {
		defer func(start time.Time) { s.record("nine_star", start, err) }(time.Now())

		r, err := s.parse(readingInput{
			Datetime:      input.Datetime,
			OffsetMinutes: input.OffsetMinutes,
			Gender:        input.Gender,
		})
		if err != nil {
			return nil, nineStarOutput{}, err
		}
		p, err := s.engine.NineStar(r.local, r.offset, r.gender)
		if err != nil {
			return nil, nineStarOutput{}, err
		}
		if input.UserStar != 0 {
			if p.Directions, err = p.ReadDirections(input.UserStar); err != nil {
				return nil, nineStarOutput{}, err
			}
		}
		return nil, newNineStarOutput(p), nil
	})
}
