// Package http provides http transport for the assistant
package http

import (
	stdhttp "net/http"

	"observafloresta/internal/modkit/httpkit"
	"observafloresta/internal/platform/net/middleware"
	"observafloresta/internal/services/api/assistant/domain"
	svc "observafloresta/internal/services/api/assistant/service"
)

// Register mounts assistant endpoints on the given router
// ask reaches the data service so it sits behind the client limiter
func Register(r httpkit.Router, s svc.Service, l *middleware.Limiter) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AskInput](r, "/parse", h.parse)
	httpkit.Get(r, "/help", h.help)

	httpkit.Throttled(r, l, func(tr httpkit.Router) {
		httpkit.PostJSON[domain.AskInput](tr, "/ask", h.ask)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /assistant/parse Assistant assistantParse
// @Summary Parse a question without answering it
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.ParseResult "ok"
// @Router /assistant/parse [post]
func (h *handlers) parse(_ *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Parse(in.Text), nil
}

// swagger:route POST /assistant/ask Assistant assistantAsk
// @Summary Answer a question about deforestation
// @Description Questions that cannot be answered return the remediation message as text
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.Answer "ok"
// @Router /assistant/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Ask(r.Context(), in.Text)
}

// swagger:route GET /assistant/help Assistant assistantHelp
// @Summary Usage text and example questions
// @Tags Assistant
// @Produce json
// @Success 200 {object} domain.Help "ok"
// @Router /assistant/help [get]
func (h *handlers) help(_ *stdhttp.Request) (any, error) {
	return h.svc.Help(), nil
}
