package services

import (
	"context"
	"errors"
	"strings"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
)

// Sample values substituted into a preview so a template can be reviewed
// without a real target or campaign.
const (
	previewTrackingURL = "#"
	previewEmail       = "user@example.com"
	previewName        = "John Doe"
)

type TemplateService struct {
	templateRepo TemplateRepository
}

func NewTemplateService(templateRepo TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

func (s *TemplateService) Create(ctx context.Context, p model.TemplateCreateRequest) (*model.Template, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Difficulty == "" {
		p.Difficulty = "medium"
	}

	t := &model.Template{
		Name:        p.Name,
		Subject:     p.Subject,
		Body:        p.Body,
		LandingPage: p.LandingPage,
		Category:    p.Category,
		Difficulty:  p.Difficulty,
	}
	return s.templateRepo.Create(ctx, t)
}

func (s *TemplateService) List(ctx context.Context) ([]*model.Template, error) {
	return s.templateRepo.List(ctx)
}

func (s *TemplateService) Get(ctx context.Context, id int64) (*model.Template, error) {
	t, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

// Preview returns the template with its body placeholders replaced by fixed
// sample values for human review.
func (s *TemplateService) Preview(ctx context.Context, id int64) (*model.Template, string, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	body := t.Body
	body = strings.ReplaceAll(body, model.PlaceholderTrackingURL, previewTrackingURL)
	body = strings.ReplaceAll(body, model.PlaceholderTargetEmail, previewEmail)
	body = strings.ReplaceAll(body, model.PlaceholderTargetName, previewName)

	return t, body, nil
}
