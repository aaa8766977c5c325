package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
)

type TemplateService interface {
	Create(ctx context.Context, p model.TemplateCreateRequest) (*model.Template, error)
	List(ctx context.Context) ([]*model.Template, error)
	Get(ctx context.Context, id int64) (*model.Template, error)
	Preview(ctx context.Context, id int64) (*model.Template, string, error)
}

type TemplateHandler struct {
	svc TemplateService
}

func RegisterTemplateRoutes(e *router.Router, h *TemplateHandler) {
	e.GET("/templates", h.ListTemplates)
	e.GET("/template/create", h.NewTemplateForm)
	e.POST("/template/create", h.CreateTemplate)
	e.GET("/template/{id}/preview", h.PreviewTemplate)
}

func NewTemplateHandler(templateService TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: templateService}
}

type createTemplateRequest struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	LandingPage string `json:"landing_page"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
}

type previewResponse struct {
	Template *model.Template `json:"template"`
	Body     string          `json:"body"`
}

func (h *TemplateHandler) ListTemplates(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"items": items})
}

// NewTemplateForm returns the data the create form needs: the placeholders a
// body may use.
func (h *TemplateHandler) NewTemplateForm(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"placeholders": []string{
			model.PlaceholderTrackingURL,
			model.PlaceholderTargetEmail,
			model.PlaceholderTargetName,
		},
	})
}

func (h *TemplateHandler) CreateTemplate(ctx *xhttp.RequestCtx) {
	var req createTemplateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	template, err := h.svc.Create(ctx, model.TemplateCreateRequest{
		Name:        req.Name,
		Subject:     req.Subject,
		Body:        req.Body,
		LandingPage: req.LandingPage,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, 201, template)
}

func (h *TemplateHandler) PreviewTemplate(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid template id")
		return
	}

	template, body, err := h.svc.Preview(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, previewResponse{Template: template, Body: body})
}
