package services

import (
	"context"
	"testing"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTrackingService(targetRepo *MockTargetRepository, campaignRepo *MockCampaignRepository, templateRepo *MockTemplateRepository, educationRepo *MockEducationRepository) *TrackingService {
	return NewTrackingService(targetRepo, campaignRepo, templateRepo, educationRepo)
}

func TestTrackingService_RecordOpen_UnknownTokenIsSilent(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), new(MockEducationRepository))

	targetRepo.On("MarkOpened", ctx, "nope", mock.Anything, "1.2.3.4", "curl").Return(false, nil)

	assert.NoError(t, svc.RecordOpen(ctx, "nope", "1.2.3.4", "curl"))
}

func TestTrackingService_RecordClick(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	campaignRepo := new(MockCampaignRepository)
	templateRepo := new(MockTemplateRepository)
	svc := newTrackingService(targetRepo, campaignRepo, templateRepo, new(MockEducationRepository))

	targetRepo.On("GetByToken", ctx, "tok123").Return(&model.Target{ID: 1, CampaignID: 5, Token: "tok123"}, nil)
	targetRepo.On("MarkClicked", ctx, "tok123", mock.Anything, "1.2.3.4", "browser").Return(true, nil)
	campaignRepo.On("GetByID", ctx, int64(5)).Return(&model.Campaign{ID: 5, TemplateID: 7}, nil)
	templateRepo.On("GetByID", ctx, int64(7)).Return(&model.Template{
		ID:          7,
		LandingPage: `<form action="/submit/{{token}}" method="post"></form>`,
	}, nil)

	html, err := svc.RecordClick(ctx, "tok123", "1.2.3.4", "browser")
	require.NoError(t, err)
	assert.Contains(t, html, "/submit/tok123")
	assert.NotContains(t, html, "{{token}}")
}

func TestTrackingService_RecordClick_UnknownToken(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), new(MockEducationRepository))

	targetRepo.On("GetByToken", ctx, "nope").Return(nil, repository.ErrTargetNotFound)

	_, err := svc.RecordClick(ctx, "nope", "", "")
	assert.ErrorIs(t, err, ErrTargetNotFound)
	targetRepo.AssertNotCalled(t, "MarkClicked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackingService_RecordSubmission(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), new(MockEducationRepository))

	targetRepo.On("GetByToken", ctx, "tok123").Return(&model.Target{ID: 1, Token: "tok123"}, nil)
	targetRepo.On("MarkSubmitted", ctx, "tok123", mock.Anything, "email=a%40x.com&password=hunter2").Return(true, nil).Once()
	targetRepo.On("MarkSubmitted", ctx, "tok123", mock.Anything, "email=late").Return(false, nil).Once()

	require.NoError(t, svc.RecordSubmission(ctx, "tok123", "email=a%40x.com&password=hunter2"))
	require.NoError(t, svc.RecordSubmission(ctx, "tok123", "email=late"))
}

func TestTrackingService_RecordSubmission_UnknownToken(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), new(MockEducationRepository))

	targetRepo.On("GetByToken", ctx, "nope").Return(nil, repository.ErrTargetNotFound)

	assert.ErrorIs(t, svc.RecordSubmission(ctx, "nope", "x=1"), ErrTargetNotFound)
}

func TestTrackingService_Education_CreatesDefaultContent(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	educationRepo := new(MockEducationRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), educationRepo)

	targetRepo.On("GetByToken", ctx, "tok123").Return(&model.Target{ID: 1, Token: "tok123"}, nil)
	educationRepo.On("First", ctx).Return(nil, repository.ErrEducationNotFound)
	educationRepo.On("Create", ctx, mock.Anything).Return(model.DefaultEducationalContent(), nil)

	content, target, err := svc.Education(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), target.ID)
	assert.NotEmpty(t, content.Title)
	educationRepo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestTrackingService_Education_ExistingContent(t *testing.T) {
	ctx := context.Background()
	targetRepo := new(MockTargetRepository)
	educationRepo := new(MockEducationRepository)
	svc := newTrackingService(targetRepo, new(MockCampaignRepository), new(MockTemplateRepository), educationRepo)

	targetRepo.On("GetByToken", ctx, "tok123").Return(&model.Target{ID: 1}, nil)
	educationRepo.On("First", ctx).Return(&model.EducationalContent{ID: 2, Title: "Custom debrief"}, nil)

	content, _, err := svc.Education(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, "Custom debrief", content.Title)
	educationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
