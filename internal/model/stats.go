package model

import "math"

// CampaignStats are the per-campaign tracking counters. Rates are percentages
// of sent mail, rounded to one decimal place, and 0 when nothing was sent.
type CampaignStats struct {
	Total      int     `json:"total"`
	Sent       int     `json:"sent"`
	Opened     int     `json:"opened"`
	Clicked    int     `json:"clicked"`
	Submitted  int     `json:"submitted"`
	OpenRate   float64 `json:"open_rate"`
	ClickRate  float64 `json:"click_rate"`
	SubmitRate float64 `json:"submit_rate"`
}

// CalculateCampaignStats derives the counters from a campaign's target set.
// Pure and deterministic.
func CalculateCampaignStats(targets []*Target) CampaignStats {
	s := CampaignStats{Total: len(targets)}
	for _, t := range targets {
		if t.SentAt != nil {
			s.Sent++
		}
		if t.OpenedAt != nil {
			s.Opened++
		}
		if t.ClickedAt != nil {
			s.Clicked++
		}
		if t.SubmittedAt != nil {
			s.Submitted++
		}
	}
	s.OpenRate = rate(s.Opened, s.Sent)
	s.ClickRate = rate(s.Clicked, s.Sent)
	s.SubmitRate = rate(s.Submitted, s.Sent)
	return s
}

// OverallStats aggregates tracking counters across every campaign.
type OverallStats struct {
	TotalCampaigns  int64   `json:"total_campaigns"`
	TotalTargets    int     `json:"total_targets"`
	TotalSent       int     `json:"total_sent"`
	TotalOpened     int     `json:"total_opened"`
	TotalClicked    int     `json:"total_clicked"`
	TotalSubmitted  int     `json:"total_submitted"`
	OverallOpenRate float64 `json:"overall_open_rate"`
	ClickRate       float64 `json:"overall_click_rate"`
	SubmitRate      float64 `json:"overall_submit_rate"`
}

func CalculateOverallStats(totalCampaigns int64, targets []*Target) OverallStats {
	s := OverallStats{TotalCampaigns: totalCampaigns, TotalTargets: len(targets)}
	for _, t := range targets {
		if t.SentAt != nil {
			s.TotalSent++
		}
		if t.OpenedAt != nil {
			s.TotalOpened++
		}
		if t.ClickedAt != nil {
			s.TotalClicked++
		}
		if t.SubmittedAt != nil {
			s.TotalSubmitted++
		}
	}
	s.OverallOpenRate = rate(s.TotalOpened, s.TotalSent)
	s.ClickRate = rate(s.TotalClicked, s.TotalSent)
	s.SubmitRate = rate(s.TotalSubmitted, s.TotalSent)
	return s
}

func rate(count, sent int) float64 {
	if sent == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(sent)*100*10) / 10
}
