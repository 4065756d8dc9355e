// handlers_advice.go - Generated sales advice handlers
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/llm"
	"github.com/sales-advisor/backend/internal/models"
	"github.com/sales-advisor/backend/internal/prompt"
)

// MessageInvalidBody is returned for request bodies that cannot be decoded.
const MessageInvalidBody = "Invalid request body"

// AdviceHandlerImpl implements the AdviceHandler interface
type AdviceHandlerImpl struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewAdviceHandler creates a new advice handler instance
func NewAdviceHandler(completer llm.Completer, logger *slog.Logger) AdviceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdviceHandlerImpl{
		completer: completer,
		logger:    logger,
	}
}

type adviceRequest struct {
	Analysis *models.Analysis `json:"analysis" msgpack:"analysis"`
}

type adviceResponse struct {
	Success bool   `json:"success" msgpack:"success"`
	Data    string `json:"data" msgpack:"data"`
}

// HandleSalesRecommendations returns ten recommendations to increase sales
func (h *AdviceHandlerImpl) HandleSalesRecommendations(c echo.Context) error {
	return h.generate(c, prompt.Recommendations)
}

// HandleSalesStrategies returns three detailed sales strategies
func (h *AdviceHandlerImpl) HandleSalesStrategies(c echo.Context) error {
	return h.generate(c, prompt.Strategies)
}

// HandleMarketingFunnels returns five marketing funnels
func (h *AdviceHandlerImpl) HandleMarketingFunnels(c echo.Context) error {
	return h.generate(c, prompt.MarketingFunnels)
}

func (h *AdviceHandlerImpl) generate(c echo.Context, tmpl prompt.Template) error {
	var req adviceRequest
	if err := decodeBody(c, &req); err != nil {
		if isTooLarge(err) {
			return NewPayloadTooLargeError(err)
		}
		return NewBadRequestError(MessageInvalidBody, err)
	}

	if req.Analysis != nil {
		if err := req.Analysis.Validate(); err != nil {
			return NewValidationError(err)
		}
	}

	text, err := prompt.Compose(tmpl, req.Analysis)
	if err != nil {
		return NewInternalError(tmpl.FailureMessage, err)
	}

	// A client disconnect must not abort the upstream call.
	ctx := context.WithoutCancel(c.Request().Context())

	out, err := h.completer.Complete(ctx, text)
	if err != nil {
		h.logger.Error("error generating "+tmpl.Kind, "error", err)
		return NewUpstreamError(tmpl.FailureMessage, err)
	}

	h.logger.Info("generated "+tmpl.Kind,
		"with_analysis", req.Analysis != nil,
		"response_chars", len(out),
	)
	return respond(c, http.StatusOK, adviceResponse{Success: true, Data: out})
}
