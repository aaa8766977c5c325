package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/fasthttp/router"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
)

type CampaignService interface {
	Create(ctx context.Context, p model.CampaignCreateRequest) (*model.Campaign, error)
	List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error)
	Detail(ctx context.Context, id int64) (*model.Campaign, []*model.Target, model.CampaignStats, error)
	Stats(ctx context.Context, id int64) (*model.Campaign, model.CampaignStats, error)
	AddTargets(ctx context.Context, campaignID int64, emailsText string) (int, error)
	Launch(ctx context.Context, id int64) (int, error)
	Pause(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type CampaignHandler struct {
	svc       CampaignService
	templates TemplateService
}

func RegisterCampaignRoutes(e *router.Router, h *CampaignHandler) {
	e.GET("/campaigns", h.ListCampaigns)
	e.GET("/campaign/create", h.NewCampaignForm)
	e.POST("/campaign/create", h.CreateCampaign)
	e.GET("/campaign/{id}", h.GetCampaign)
	e.POST("/campaign/{id}/add_targets", h.AddTargets)
	e.POST("/campaign/{id}/launch", h.LaunchCampaign)
	e.POST("/campaign/{id}/pause", h.PauseCampaign)
	e.POST("/campaign/{id}/delete", h.DeleteCampaign)
}

func NewCampaignHandler(campaignService CampaignService, templateService TemplateService) *CampaignHandler {
	return &CampaignHandler{
		svc:       campaignService,
		templates: templateService,
	}
}

type createCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TemplateID  int64  `json:"template_id"`
}

type addTargetsRequest struct {
	Emails string `json:"emails"`
}

type campaignListResponse struct {
	Items []*model.Campaign `json:"items"`
	Total int64             `json:"total"`
}

type campaignDetailResponse struct {
	Campaign *model.Campaign     `json:"campaign"`
	Targets  []*model.Target     `json:"targets"`
	Stats    model.CampaignStats `json:"stats"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *CampaignHandler) ListCampaigns(ctx *xhttp.RequestCtx) {
	var f model.CampaignFilter

	if v := query(ctx, "status"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] != "" {
				f.Statuses = append(f.Statuses, model.CampaignStatus(parts[i]))
			}
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, campaignListResponse{Items: items, Total: total})
}

// NewCampaignForm returns the data the create form needs: the selectable
// templates.
func (h *CampaignHandler) NewCampaignForm(ctx *xhttp.RequestCtx) {
	templates, err := h.templates.List(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"templates": templates})
}

func (h *CampaignHandler) CreateCampaign(ctx *xhttp.RequestCtx) {
	var req createCampaignRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	campaign, err := h.svc.Create(ctx, model.CampaignCreateRequest{
		Name:        req.Name,
		Description: req.Description,
		TemplateID:  req.TemplateID,
	})
	if err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, campaign)
}

func (h *CampaignHandler) GetCampaign(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, targets, stats, err := h.svc.Detail(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, campaignDetailResponse{Campaign: campaign, Targets: targets, Stats: stats})
}

func (h *CampaignHandler) AddTargets(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	var req addTargetsRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	added, err := h.svc.AddTargets(ctx, id, req.Emails)
	if err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int{"added": added})
}

func (h *CampaignHandler) LaunchCampaign(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	sent, err := h.svc.Launch(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"sent": sent, "status": model.CampaignStatusActive})
}

func (h *CampaignHandler) PauseCampaign(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	if err := h.svc.Pause(ctx, id); err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"status": model.CampaignStatusPaused})
}

func (h *CampaignHandler) DeleteCampaign(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid campaign id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		h.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"deleted": "ok"})
}

func (h *CampaignHandler) writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrCampaignNotFound), errors.Is(err, services.ErrTemplateNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCampaignNotDraft):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	default:
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	}
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func writeHTML(ctx *xhttp.RequestCtx, status int, html string) {
	ctx.Response.Header.Set("Content-Type", "text/html; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyString(html)
}

func paramID(ctx *xhttp.RequestCtx) (int64, error) {
	s, _ := ctx.UserValue("id").(string)
	return strconv.ParseInt(s, 10, 64)
}

func paramToken(ctx *xhttp.RequestCtx) string {
	s, _ := ctx.UserValue("token").(string)
	return s
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
