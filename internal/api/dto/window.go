package dto

import (
	"fmt"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/services"
	"time"
)

type Segment struct {
	StartIso string `json:"startIso"`
	EndIso   string `json:"endIso"`
	Status   string `json:"status"`
	Label    string `json:"label,omitempty"`
}

type DayBucket struct {
	Date     string    `json:"date"`
	Segments []Segment `json:"segments"`
}

type WindowOptions struct {
	IncludeLeadingOffSeed bool `json:"includeLeadingOffSeed"`
	FillGaps              bool `json:"fillGaps"`
	// ToleranceSeconds overrides the 60s connector tolerance when positive.
	ToleranceSeconds int `json:"toleranceSeconds,omitempty"`
}

type WindowRequest struct {
	Bucket DayBucket `json:"bucket"`
	WindowOptions
}

type ClippedSegment struct {
	StartIso        string `json:"startIso"`
	EndIso          string `json:"endIso"`
	ClippedStartIso string `json:"clippedStartIso"`
	ClippedEndIso   string `json:"clippedEndIso"`
	Status          string `json:"status"`
	Label           string `json:"label,omitempty"`
	Minutes         int    `json:"minutes"`
	Seed            bool   `json:"seed,omitempty"`
	Filler          bool   `json:"filler,omitempty"`
}

type Connector struct {
	AtIso string `json:"atIso"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type DayWindowResponse struct {
	Date       string           `json:"date"`
	StartIso   string           `json:"startIso"`
	EndIso     string           `json:"endIso"`
	Segments   []ClippedSegment `json:"segments"`
	Connectors []Connector      `json:"connectors"`
	Minutes    LaneMinutes      `json:"minutes"`
	Totals     LaneTotals       `json:"totals"`
}

func (o WindowOptions) ToDomain() services.WindowOptions {
	return services.WindowOptions{
		IncludeLeadingOffSeed: o.IncludeLeadingOffSeed,
		FillGaps:              o.FillGaps,
		Tolerance:             time.Duration(o.ToleranceSeconds) * time.Second,
	}
}

func (b DayBucket) ToDomain() (domain.DayBucket, error) {
	out := domain.DayBucket{Date: b.Date, Segments: make([]domain.Segment, 0, len(b.Segments))}
	for i, s := range b.Segments {
		start, err := domain.ParseInstant(s.StartIso)
		if err != nil {
			return domain.DayBucket{}, fmt.Errorf("segment #%d start: %w", i+1, err)
		}
		end, err := domain.ParseInstant(s.EndIso)
		if err != nil {
			return domain.DayBucket{}, fmt.Errorf("segment #%d end: %w", i+1, err)
		}
		lane, err := domain.ParseStatus(s.Status)
		if err != nil {
			return domain.DayBucket{}, fmt.Errorf("segment #%d: %w", i+1, err)
		}
		out.Segments = append(out.Segments, domain.Segment{Start: start, End: end, Lane: lane, Label: s.Label})
	}
	return out, nil
}

func FromBuckets(in []domain.DayBucket) []DayBucket {
	out := make([]DayBucket, 0, len(in))
	for _, b := range in {
		segs := make([]Segment, 0, len(b.Segments))
		for _, s := range b.Segments {
			segs = append(segs, Segment{
				StartIso: FormatInstant(s.Start),
				EndIso:   FormatInstant(s.End),
				Status:   s.Lane.Status(),
				Label:    s.Label,
			})
		}
		out = append(out, DayBucket{Date: b.Date, Segments: segs})
	}
	return out
}

func NewDayWindowResponse(w domain.DayWindow) DayWindowResponse {
	res := DayWindowResponse{
		Date:       w.Date,
		StartIso:   FormatInstant(w.Start),
		EndIso:     FormatInstant(w.End),
		Segments:   make([]ClippedSegment, 0, len(w.Segments)),
		Connectors: make([]Connector, 0, len(w.Connectors)),
		Minutes:    NewLaneMinutes(w.Minutes),
	}

	var hhmm [domain.LaneCount]string
	for _, l := range domain.AllLanes {
		hhmm[l] = domain.FormatHHMM(w.Minutes[l])
	}
	res.Totals = NewLaneTotals(hhmm)

	for _, s := range w.Segments {
		res.Segments = append(res.Segments, ClippedSegment{
			StartIso:        FormatInstant(s.Start),
			EndIso:          FormatInstant(s.End),
			ClippedStartIso: FormatInstant(s.ClippedStart),
			ClippedEndIso:   FormatInstant(s.ClippedEnd),
			Status:          s.Lane.Status(),
			Label:           s.Label,
			Minutes:         s.Minutes(),
			Seed:            s.Seed,
			Filler:          s.Filler,
		})
	}
	for _, c := range w.Connectors {
		res.Connectors = append(res.Connectors, Connector{
			AtIso: FormatInstant(c.At),
			From:  c.From.Status(),
			To:    c.To.Status(),
		})
	}
	return res
}
