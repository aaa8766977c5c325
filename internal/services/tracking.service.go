package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/secsim/phishing-gateway/pkg/prom"
)

var (
	ErrTargetNotFound = errors.New("target not found")
)

type EducationRepository interface {
	First(ctx context.Context) (*model.EducationalContent, error)
	Create(ctx context.Context, c *model.EducationalContent) (*model.EducationalContent, error)
}

// TrackingService advances a target's tracking timestamps. Every transition
// is idempotent: the repository's set-only-if-unset updates make a duplicate
// event a no-op, so reloading a tracking pixel many times records one open.
type TrackingService struct {
	targetRepo    TargetRepository
	campaignRepo  CampaignRepository
	templateRepo  TemplateRepository
	educationRepo EducationRepository
}

func NewTrackingService(targetRepo TargetRepository, campaignRepo CampaignRepository, templateRepo TemplateRepository, educationRepo EducationRepository) *TrackingService {
	return &TrackingService{
		targetRepo:    targetRepo,
		campaignRepo:  campaignRepo,
		templateRepo:  templateRepo,
		educationRepo: educationRepo,
	}
}

// RecordOpen handles a tracking-pixel fetch. Unknown tokens are silently
// ignored so the endpoint leaks nothing about which tokens exist.
func (s *TrackingService) RecordOpen(ctx context.Context, token, ip, userAgent string) error {
	first, err := s.targetRepo.MarkOpened(ctx, token, time.Now().UTC(), ip, userAgent)
	if err != nil {
		return err
	}
	if first {
		prom.IncCounter(prom.SystemTracking, prom.MetricOpens)
	}
	return nil
}

// RecordClick stamps clicked_at on the first click and returns the landing
// page HTML with the token substituted, on every click.
func (s *TrackingService) RecordClick(ctx context.Context, token, ip, userAgent string) (string, error) {
	target, err := s.targetRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTargetNotFound) {
			return "", ErrTargetNotFound
		}
		return "", err
	}

	first, err := s.targetRepo.MarkClicked(ctx, token, time.Now().UTC(), ip, userAgent)
	if err != nil {
		return "", err
	}
	if first {
		prom.IncCounter(prom.SystemTracking, prom.MetricClicks)
	}

	campaign, err := s.campaignRepo.GetByID(ctx, target.CampaignID)
	if err != nil {
		return "", err
	}
	template, err := s.templateRepo.GetByID(ctx, campaign.TemplateID)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(template.LandingPage, model.PlaceholderToken, token), nil
}

// RecordSubmission stores the raw form body on the first submission. Later
// submissions are accepted but never overwrite the first capture.
func (s *TrackingService) RecordSubmission(ctx context.Context, token, data string) error {
	if _, err := s.targetRepo.GetByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTargetNotFound) {
			return ErrTargetNotFound
		}
		return err
	}

	first, err := s.targetRepo.MarkSubmitted(ctx, token, time.Now().UTC(), data)
	if err != nil {
		return err
	}
	if first {
		prom.IncCounter(prom.SystemTracking, prom.MetricSubmissions)
	}
	return nil
}

// Education resolves the debrief view for a token: the target record plus the
// singleton content, created with default text when none exists. Terminal
// view, no state mutation on the target.
func (s *TrackingService) Education(ctx context.Context, token string) (*model.EducationalContent, *model.Target, error) {
	target, err := s.targetRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTargetNotFound) {
			return nil, nil, ErrTargetNotFound
		}
		return nil, nil, err
	}

	content, err := s.educationRepo.First(ctx)
	if errors.Is(err, repository.ErrEducationNotFound) {
		content, err = s.educationRepo.Create(ctx, model.DefaultEducationalContent())
	}
	if err != nil {
		return nil, nil, err
	}

	return content, target, nil
}
