package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/secsim/phishing-gateway/pkg/logger"
	"github.com/secsim/phishing-gateway/pkg/prom"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrCampaignNotDraft = errors.New("campaign already launched")
)

type CampaignRepository interface {
	Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.CampaignStatus) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.CampaignStatus) error
	MarkLaunched(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type TargetRepository interface {
	Create(ctx context.Context, t *model.Target) (*model.Target, error)
	GetByToken(ctx context.Context, token string) (*model.Target, error)
	ExistsInCampaign(ctx context.Context, campaignID int64, email string) (bool, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]*model.Target, error)
	ListAll(ctx context.Context) ([]*model.Target, error)
	Count(ctx context.Context) (int64, error)
	MarkSent(ctx context.Context, id int64, at time.Time) error
	MarkOpened(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error)
	MarkClicked(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error)
	MarkSubmitted(ctx context.Context, token string, at time.Time, data string) (bool, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *model.Template) (*model.Template, error)
	GetByID(ctx context.Context, id int64) (*model.Template, error)
	List(ctx context.Context) ([]*model.Template, error)
	Count(ctx context.Context) (int64, error)
}

// Mailer delivers one phishing email to one target, or simulates doing so.
type Mailer interface {
	Send(target *model.Target, template *model.Template, campaign *model.Campaign) error
}

type CampaignService struct {
	campaignRepo CampaignRepository
	targetRepo   TargetRepository
	templateRepo TemplateRepository
	mailer       Mailer
}

func NewCampaignService(campaignRepo CampaignRepository, targetRepo TargetRepository, templateRepo TemplateRepository, mailer Mailer) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		targetRepo:   targetRepo,
		templateRepo: templateRepo,
		mailer:       mailer,
	}
}

func (s *CampaignService) Create(ctx context.Context, p model.CampaignCreateRequest) (*model.Campaign, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.templateRepo.GetByID(ctx, p.TemplateID); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("load template: %w", err)
	}

	c := &model.Campaign{
		Name:        p.Name,
		Description: p.Description,
		TemplateID:  p.TemplateID,
		Status:      model.CampaignStatusDraft,
	}
	return s.campaignRepo.Create(ctx, c)
}

func (s *CampaignService) List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error) {
	return s.campaignRepo.List(ctx, f)
}

// Detail returns the campaign, its targets and the derived statistics.
func (s *CampaignService) Detail(ctx context.Context, id int64) (*model.Campaign, []*model.Target, model.CampaignStats, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, nil, model.CampaignStats{}, ErrCampaignNotFound
		}
		return nil, nil, model.CampaignStats{}, err
	}

	targets, err := s.targetRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, nil, model.CampaignStats{}, err
	}

	return campaign, targets, model.CalculateCampaignStats(targets), nil
}

// Stats returns the statistics record for one campaign.
func (s *CampaignService) Stats(ctx context.Context, id int64) (*model.Campaign, model.CampaignStats, error) {
	campaign, _, stats, err := s.Detail(ctx, id)
	return campaign, stats, err
}

// AddTargets parses a newline-separated email list and inserts one target per
// new (email, campaign) pair, each with a freshly generated token. Lines
// without an @ and duplicate pairs are skipped. Returns the number added.
func (s *CampaignService) AddTargets(ctx context.Context, campaignID int64, emailsText string) (int, error) {
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return 0, ErrCampaignNotFound
		}
		return 0, err
	}

	added := 0
	for _, line := range strings.Split(emailsText, "\n") {
		email := strings.TrimSpace(line)
		if email == "" || !strings.Contains(email, "@") {
			continue
		}

		exists, err := s.targetRepo.ExistsInCampaign(ctx, campaignID, email)
		if err != nil {
			return added, err
		}
		if exists {
			continue
		}

		_, err = s.targetRepo.Create(ctx, &model.Target{
			Email:      email,
			CampaignID: campaignID,
			Token:      model.NewToken(),
		})
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Launch sends to every target without a sent_at, sequentially, counting
// successes. Failed sends are logged and skipped, never retried. The campaign
// goes active with launched_at stamped even when some sends failed.
func (s *CampaignService) Launch(ctx context.Context, id int64) (int, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return 0, ErrCampaignNotFound
		}
		return 0, err
	}

	if campaign.Status != model.CampaignStatusDraft {
		return 0, ErrCampaignNotDraft
	}

	template, err := s.templateRepo.GetByID(ctx, campaign.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return 0, ErrTemplateNotFound
		}
		return 0, err
	}

	targets, err := s.targetRepo.ListByCampaign(ctx, id)
	if err != nil {
		return 0, err
	}

	started := time.Now()
	sent := 0
	for _, target := range targets {
		if target.SentAt != nil {
			continue
		}
		if err := s.mailer.Send(target, template, campaign); err != nil {
			prom.IncCounter(prom.SystemTracking, prom.MetricEmailsFailed)
			continue
		}
		if err := s.targetRepo.MarkSent(ctx, target.ID, time.Now().UTC()); err != nil {
			logger.Error("failed stamping sent_at", "target_id", target.ID, "error", err)
			continue
		}
		prom.IncCounter(prom.SystemTracking, prom.MetricEmailsSent)
		sent++
	}
	prom.AddHistogram(prom.SystemCampaign, prom.MetricLaunchDuration, time.Since(started).Seconds())

	if err := s.campaignRepo.MarkLaunched(ctx, id, time.Now().UTC()); err != nil {
		return sent, err
	}

	logger.Info("campaign launched", "campaign_id", id, "sent", sent, "targets", len(targets))
	return sent, nil
}

// Pause sets the campaign to paused regardless of its current status.
func (s *CampaignService) Pause(ctx context.Context, id int64) error {
	err := s.campaignRepo.UpdateStatus(ctx, id, model.CampaignStatusPaused)
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return ErrCampaignNotFound
	}
	return err
}

// Delete removes the campaign and cascades to its targets.
func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	err := s.campaignRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return ErrCampaignNotFound
	}
	return err
}
