package services

import (
	"context"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCampaignRepository) CountByStatus(ctx context.Context, status model.CampaignStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id int64, status model.CampaignStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCampaignRepository) MarkLaunched(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) Create(ctx context.Context, t *model.Target) (*model.Target, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Target), args.Error(1)
}

func (m *MockTargetRepository) GetByToken(ctx context.Context, token string) (*model.Target, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Target), args.Error(1)
}

func (m *MockTargetRepository) ExistsInCampaign(ctx context.Context, campaignID int64, email string) (bool, error) {
	args := m.Called(ctx, campaignID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]*model.Target, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Target), args.Error(1)
}

func (m *MockTargetRepository) ListAll(ctx context.Context) ([]*model.Target, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Target), args.Error(1)
}

func (m *MockTargetRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTargetRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockTargetRepository) MarkOpened(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error) {
	args := m.Called(ctx, token, at, ip, userAgent)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetRepository) MarkClicked(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error) {
	args := m.Called(ctx, token, at, ip, userAgent)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetRepository) MarkSubmitted(ctx context.Context, token string, at time.Time, data string) (bool, error) {
	args := m.Called(ctx, token, at, data)
	return args.Bool(0), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id int64) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*model.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Template), args.Error(1)
}

func (m *MockTemplateRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEducationRepository struct {
	mock.Mock
}

func (m *MockEducationRepository) First(ctx context.Context) (*model.EducationalContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EducationalContent), args.Error(1)
}

func (m *MockEducationRepository) Create(ctx context.Context, c *model.EducationalContent) (*model.EducationalContent, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EducationalContent), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(target *model.Target, template *model.Template, campaign *model.Campaign) error {
	args := m.Called(target, template, campaign)
	return args.Error(0)
}
