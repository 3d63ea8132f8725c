package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aivault/internal/errors"
	"aivault/internal/inference"
	"aivault/internal/middleware"
	"aivault/internal/service"
)

// AnalysisHandler handles the analyze, sentiment and history endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeRequest represents an analysis request. Username is accepted for
// compatibility with older clients; the scan is recorded under the token
// subject.
type AnalyzeRequest struct {
	Username string `json:"username"`
	Text     string `json:"text" validate:"required"`
}

// AnalyzeResponse carries a produced summary.
type AnalyzeResponse struct {
	Summary string `json:"summary"`
}

// SentimentResponse carries a detected mood label.
type SentimentResponse struct {
	Result string `json:"result"`
}

// Analyze godoc
// @Summary Summarize text
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Text to summarize"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	subject := middleware.CurrentClaims(c).Subject
	summary, err := h.analysisService.Analyze(c.Request().Context(), subject, req.Text)
	if err != nil {
		return mapAnalysisError(err)
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{Summary: summary})
}

// Sentiment godoc
// @Summary Detect the mood of text
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Text to classify"
// @Success 200 {object} SentimentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sentiment [post]
func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	subject := middleware.CurrentClaims(c).Subject
	mood, err := h.analysisService.Sentiment(c.Request().Context(), subject, req.Text)
	if err != nil {
		return mapAnalysisError(err)
	}

	return c.JSON(http.StatusOK, SentimentResponse{Result: mood})
}

// History godoc
// @Summary List scan history for a user
// @Tags analysis
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} model.Scan
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /history/{username} [get]
func (h *AnalysisHandler) History(c echo.Context) error {
	username := c.Param("username")
	scans, err := h.analysisService.History(c.Request().Context(), username)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, scans)
}

func (h *AnalysisHandler) bindRequest(c echo.Context) (*AnalyzeRequest, error) {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

// mapAnalysisError turns gateway exhaustion into a 502 instead of burying the
// failure inside a 200 body.
func mapAnalysisError(err error) error {
	var gwErr *inference.GatewayError
	if stderrors.As(err, &gwErr) {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: gwErr.Message,
			Code:  "GATEWAY_ERROR",
		})
	}
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
