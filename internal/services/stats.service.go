package services

import (
	"context"

	"github.com/secsim/phishing-gateway/internal/model"
)

// DashboardSummary backs the admin homepage.
type DashboardSummary struct {
	RecentCampaigns []*model.Campaign `json:"recent_campaigns"`
	TotalCampaigns  int64             `json:"total_campaigns"`
	TotalTemplates  int64             `json:"total_templates"`
	TotalTargets    int64             `json:"total_targets"`
	ActiveCampaigns int64             `json:"active_campaigns"`
}

// AnalyticsReport aggregates tracking results across campaigns.
type AnalyticsReport struct {
	Campaigns []*model.Campaign  `json:"campaigns"`
	Stats     model.OverallStats `json:"stats"`
}

type StatsService struct {
	campaignRepo CampaignRepository
	targetRepo   TargetRepository
	templateRepo TemplateRepository
}

func NewStatsService(campaignRepo CampaignRepository, targetRepo TargetRepository, templateRepo TemplateRepository) *StatsService {
	return &StatsService{
		campaignRepo: campaignRepo,
		targetRepo:   targetRepo,
		templateRepo: templateRepo,
	}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	recent, totalCampaigns, err := s.campaignRepo.List(ctx, model.CampaignFilter{Limit: 5, Desc: true})
	if err != nil {
		return nil, err
	}

	totalTemplates, err := s.templateRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTargets, err := s.targetRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.campaignRepo.CountByStatus(ctx, model.CampaignStatusActive)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		RecentCampaigns: recent,
		TotalCampaigns:  totalCampaigns,
		TotalTemplates:  totalTemplates,
		TotalTargets:    totalTargets,
		ActiveCampaigns: active,
	}, nil
}

// Analytics reports over campaigns that have run: active or completed.
func (s *StatsService) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	campaigns, _, err := s.campaignRepo.List(ctx, model.CampaignFilter{
		Statuses: []model.CampaignStatus{model.CampaignStatusActive, model.CampaignStatusCompleted},
		Limit:    1000,
	})
	if err != nil {
		return nil, err
	}

	totalCampaigns, err := s.campaignRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		Campaigns: campaigns,
		Stats:     model.CalculateOverallStats(totalCampaigns, targets),
	}, nil
}
