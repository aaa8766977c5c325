package handlers

import (
	"context"
	"testing"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTrackingService struct {
	mock.Mock
}

func (m *MockTrackingService) RecordOpen(ctx context.Context, token, ip, userAgent string) error {
	args := m.Called(ctx, token, ip, userAgent)
	return args.Error(0)
}

func (m *MockTrackingService) RecordClick(ctx context.Context, token, ip, userAgent string) (string, error) {
	args := m.Called(ctx, token, ip, userAgent)
	return args.String(0), args.Error(1)
}

func (m *MockTrackingService) RecordSubmission(ctx context.Context, token, data string) error {
	args := m.Called(ctx, token, data)
	return args.Error(0)
}

func (m *MockTrackingService) Education(ctx context.Context, token string) (*model.EducationalContent, *model.Target, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.EducationalContent), args.Get(1).(*model.Target), args.Error(2)
}

func TestTrackingHandler_TrackOpen(t *testing.T) {
	t.Run("known token serves the pixel", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordOpen", mock.Anything, "tok123", mock.Anything, mock.Anything).Return(nil)

		ctx := setupTestContext("GET", "/track/open/tok123", nil)
		ctx.SetUserValue("token", "tok123")
		handler.TrackOpen(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "image/gif", string(ctx.Response.Header.ContentType()))
		assert.Equal(t, trackingPixel, ctx.Response.Body())
	})

	t.Run("unknown token serves the same pixel", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordOpen", mock.Anything, "nope", mock.Anything, mock.Anything).Return(nil)

		ctx := setupTestContext("GET", "/track/open/nope", nil)
		ctx.SetUserValue("token", "nope")
		handler.TrackOpen(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, trackingPixel, ctx.Response.Body())
	})
}

func TestTrackingHandler_TrackClick(t *testing.T) {
	t.Run("serves the landing page", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordClick", mock.Anything, "tok123", mock.Anything, mock.Anything).
			Return("<form action=\"/submit/tok123\"></form>", nil)

		ctx := setupTestContext("GET", "/track/click/tok123", nil)
		ctx.SetUserValue("token", "tok123")
		handler.TrackClick(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.ContentType()), "text/html")
		assert.Contains(t, string(ctx.Response.Body()), "/submit/tok123")
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordClick", mock.Anything, "nope", mock.Anything, mock.Anything).
			Return("", services.ErrTargetNotFound)

		ctx := setupTestContext("GET", "/track/click/nope", nil)
		ctx.SetUserValue("token", "nope")
		handler.TrackClick(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Invalid link")
	})
}

func TestTrackingHandler_Submit(t *testing.T) {
	t.Run("stores the raw body and redirects", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordSubmission", mock.Anything, "tok123", "email=a%40x.com&password=hunter2").Return(nil)

		ctx := setupTestContext("POST", "/submit/tok123", []byte("email=a%40x.com&password=hunter2"))
		ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
		ctx.SetUserValue("token", "tok123")
		handler.Submit(ctx)

		assert.Equal(t, 302, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.Peek("Location")), "/education/tok123")
		svc.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := new(MockTrackingService)
		handler := NewTrackingHandler(svc)

		svc.On("RecordSubmission", mock.Anything, "nope", mock.Anything).Return(services.ErrTargetNotFound)

		ctx := setupTestContext("POST", "/submit/nope", []byte("x=1"))
		ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
		ctx.SetUserValue("token", "nope")
		handler.Submit(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Invalid submission")
	})
}

func TestTrackingHandler_Education(t *testing.T) {
	svc := new(MockTrackingService)
	handler := NewTrackingHandler(svc)

	svc.On("Education", mock.Anything, "tok123").Return(
		model.DefaultEducationalContent(),
		&model.Target{ID: 1, Email: "a@x.com"},
		nil,
	)

	ctx := setupTestContext("GET", "/education/tok123", nil)
	ctx.SetUserValue("token", "tok123")
	handler.Education(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "simulated phishing attack")
	assert.Contains(t, body, "a@x.com")
}
