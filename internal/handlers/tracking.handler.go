package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/fasthttp/router"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
)

// trackingPixel is a 1x1 transparent GIF, returned for every pixel fetch so
// the response never reveals whether the token was recognized.
var trackingPixel = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

type TrackingService interface {
	RecordOpen(ctx context.Context, token, ip, userAgent string) error
	RecordClick(ctx context.Context, token, ip, userAgent string) (string, error)
	RecordSubmission(ctx context.Context, token, data string) error
	Education(ctx context.Context, token string) (*model.EducationalContent, *model.Target, error)
}

type TrackingHandler struct {
	svc TrackingService
}

func RegisterTrackingRoutes(e *router.Router, h *TrackingHandler) {
	e.GET("/track/open/{token}", h.TrackOpen)
	e.GET("/track/click/{token}", h.TrackClick)
	e.POST("/submit/{token}", h.Submit)
	e.GET("/education/{token}", h.Education)
}

func NewTrackingHandler(trackingService TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: trackingService}
}

// TrackOpen serves the tracking pixel. Always the same bytes and status, for
// known and unknown tokens alike.
func (h *TrackingHandler) TrackOpen(ctx *xhttp.RequestCtx) {
	_ = h.svc.RecordOpen(ctx, paramToken(ctx), ctx.RemoteIP().String(), string(ctx.UserAgent()))

	ctx.Response.Header.Set("Content-Type", "image/gif")
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(trackingPixel)
}

func (h *TrackingHandler) TrackClick(ctx *xhttp.RequestCtx) {
	html, err := h.svc.RecordClick(ctx, paramToken(ctx), ctx.RemoteIP().String(), string(ctx.UserAgent()))
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			writeHTML(ctx, xhttp.StatusNotFound, "<h1>Invalid link</h1>")
			return
		}
		writeHTML(ctx, xhttp.StatusInternalServerError, "<h1>Something went wrong</h1>")
		return
	}
	writeHTML(ctx, xhttp.StatusOK, html)
}

// Submit captures the posted form verbatim and redirects to the education
// page. The submitted values are stored as-is, never parsed into fields.
func (h *TrackingHandler) Submit(ctx *xhttp.RequestCtx) {
	token := paramToken(ctx)

	err := h.svc.RecordSubmission(ctx, token, ctx.PostArgs().String())
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			writeHTML(ctx, xhttp.StatusNotFound, "<h1>Invalid submission</h1>")
			return
		}
		writeHTML(ctx, xhttp.StatusInternalServerError, "<h1>Something went wrong</h1>")
		return
	}

	ctx.Redirect("/education/"+token, xhttp.StatusFound)
}

func (h *TrackingHandler) Education(ctx *xhttp.RequestCtx) {
	content, target, err := h.svc.Education(ctx, paramToken(ctx))
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			writeHTML(ctx, xhttp.StatusNotFound, "<h1>Page not found</h1>")
			return
		}
		writeHTML(ctx, xhttp.StatusInternalServerError, "<h1>Something went wrong</h1>")
		return
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1>%s</h1>
<p>Hello %s, you just took part in a phishing awareness exercise.</p>
%s
%s
</body>
</html>`, content.Title, content.Title, target.DisplayName(), content.Content, content.Tips)

	writeHTML(ctx, xhttp.StatusOK, page)
}
