package server

import (
	"github.com/theirongolddev/jars/internal/budget"
	"github.com/theirongolddev/jars/internal/cli"
	"github.com/theirongolddev/jars/internal/model"
)

// JarResponse describes one jar in the catalogue.
type JarResponse struct {
	Code           string `json:"code"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Color          string `json:"color"`
	Label          string `json:"label"`
	DefaultPercent int    `json:"default_percent"`
	FixedShare     string `json:"fixed_share"`
}

// JarsResponse is served at /api/v1/jars.
type JarsResponse struct {
	Mode          string        `json:"mode"`
	DefaultIncome float64       `json:"default_income"`
	Jars          []JarResponse `json:"jars"`
}

// AllocationRequest is the POST body of /api/v1/allocation. A missing
// income falls back to the mode's default; missing percents to the default
// split.
type AllocationRequest struct {
	Mode     string   `json:"mode"`
	Income   *float64 `json:"income"`
	Percents []int    `json:"percents"`
}

// StatusResponse reports the percent validation of an editable split.
type StatusResponse struct {
	State     string `json:"state"`
	Total     int    `json:"total"`
	Excess    int    `json:"excess,omitempty"`
	Remainder int    `json:"remainder,omitempty"`
	Message   string `json:"message"`
}

// LineResponse is one jar's amount. Amounts are decimal strings with two
// places so no precision is lost in transit.
type LineResponse struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Label      string `json:"label"`
	Share      string `json:"share"`
	Amount     string `json:"amount"`
	AmountText string `json:"amount_text"`
}

// AllocationBody holds the computed split.
type AllocationBody struct {
	Lines     []LineResponse `json:"lines"`
	Total     string         `json:"total"`
	TotalText string         `json:"total_text"`
}

// AllocationResponse is served by both allocation endpoints. Status is
// absent in fixed mode; Allocation is absent when the split is over the limit.
type AllocationResponse struct {
	Mode       string          `json:"mode"`
	Income     string          `json:"income"`
	Percents   []int           `json:"percents,omitempty"`
	Status     *StatusResponse `json:"status,omitempty"`
	Allocation *AllocationBody `json:"allocation,omitempty"`
}

// StatsResponse is served at /api/v1/stats.
type StatsResponse struct {
	StartedAt    string `json:"started_at"`
	Requests     int64  `json:"requests"`
	Computations int64  `json:"computations"`
	OverLimit    int64  `json:"over_limit"`
}

// NewJarsResponse builds the catalogue for mode.
func NewJarsResponse(mode model.Mode, jars []model.Jar) JarsResponse {
	resp := JarsResponse{
		Mode:          mode.String(),
		DefaultIncome: model.DefaultIncome(mode),
		Jars:          make([]JarResponse, 0, len(jars)),
	}
	for i, j := range jars {
		resp.Jars = append(resp.Jars, JarResponse{
			Code:           j.Code,
			Title:          j.Title,
			Description:    j.Description,
			Color:          j.Color,
			Label:          j.Label.String(),
			DefaultPercent: model.DefaultPercents[i],
			FixedShare:     model.FixedFractions[i].Shift(2).String() + "%",
		})
	}
	return resp
}

// NewAllocationResponse converts a calculator result into its wire form.
func NewAllocationResponse(res budget.Result, percents []int) AllocationResponse {
	resp := AllocationResponse{
		Mode:   res.Mode.String(),
		Income: res.Income.StringFixed(2),
	}
	if res.Mode.Editable() {
		resp.Percents = percents
	}

	if v := res.Validation; v != nil {
		resp.Status = &StatusResponse{
			State:     v.State.String(),
			Total:     v.Total,
			Excess:    v.Excess,
			Remainder: v.Remainder,
			Message:   v.Message(),
		}
	}

	if a := res.Allocation; a != nil {
		body := &AllocationBody{
			Lines:     make([]LineResponse, 0, len(a.Lines)),
			Total:     a.Total.StringFixed(2),
			TotalText: cli.FormatMoney(a.Total),
		}
		for _, l := range a.Lines {
			body.Lines = append(body.Lines, LineResponse{
				Code:       l.Jar.Code,
				Title:      l.Jar.Title,
				Label:      l.Jar.Label.String(),
				Share:      l.Share,
				Amount:     l.Amount.StringFixed(2),
				AmountText: cli.FormatMoney(l.Amount),
			})
		}
		resp.Allocation = body
	}

	return resp
}
