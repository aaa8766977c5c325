package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*services.DashboardSummary, error)
	Analytics(ctx context.Context) (*services.AnalyticsReport, error)
}

type StatsHandler struct {
	svc       StatsService
	campaigns CampaignService
}

func RegisterStatsRoutes(e *router.Router, h *StatsHandler) {
	e.GET("/", h.Dashboard)
	e.GET("/analytics", h.Analytics)
	e.GET("/api/campaign/{id}/stats", h.CampaignStats)
}

func NewStatsHandler(statsService StatsService, campaignService CampaignService) *StatsHandler {
	return &StatsHandler{
		svc:       statsService,
		campaigns: campaignService,
	}
}

type campaignStatsResponse struct {
	ID     int64                `json:"id"`
	Name   string               `json:"name"`
	Status model.CampaignStatus `json:"status"`
	Stats  model.CampaignStats  `json:"stats"`
}

func (h *StatsHandler) Dashboard(ctx *xhttp.RequestCtx) {
	summary, err := h.svc.Dashboard(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, summary)
}

func (h *StatsHandler) Analytics(ctx *xhttp.RequestCtx) {
	report, err := h.svc.Analytics(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, report)
}

// CampaignStats is the polling endpoint behind the live campaign view.
func (h *StatsHandler) CampaignStats(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, stats, err := h.campaigns.Stats(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, campaignStatsResponse{
		ID:     campaign.ID,
		Name:   campaign.Name,
		Status: campaign.Status,
		Stats:  stats,
	})
}
