package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/models"
	"options-contracts-api/internal/services"
	"options-contracts-api/pkg/lambda"
)

// APIKeyHeader carries the provider API key on HTTP requests
const APIKeyHeader = "X-API-Key"

// OptionsHandler handles option contract requests
type OptionsHandler struct {
	optionsService services.OptionsService
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(optionsService services.OptionsService) *OptionsHandler {
	return &OptionsHandler{
		optionsService: optionsService,
	}
}

// @Summary List option contracts
// @Description Snapshot of the contracts of an underlying expiring within the window
// @Tags options
// @Produce json
// @Param ticker_symbol query string false "Underlying ticker" default(AAPL)
// @Param limit query int false "Maximum number of contracts" default(10)
// @Param days_forward query int false "Expiration window in days" default(30)
// @Param contract_type query string false "Contract type" Enums(call, put)
// @Param X-API-Key header string false "Provider API key"
// @Success 200 {object} models.ContractsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /options/contracts [get]
func (h *OptionsHandler) ListContracts(c *gin.Context) {
	query, err := models.NewOptionQuery(queryParamsFromGin(c), h.optionsService.Defaults())
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.optionsService.ListContracts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an option contract
// @Description Snapshot of a single contract
// @Tags options
// @Produce json
// @Param option_ticker path string true "Option contract ticker, e.g. O:AAPL261017C00150000"
// @Param ticker_symbol query string false "Underlying ticker" default(AAPL)
// @Param X-API-Key header string false "Provider API key"
// @Success 200 {object} models.ContractResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /options/contracts/{option_ticker} [get]
func (h *OptionsHandler) GetContract(c *gin.Context) {
	params := queryParamsFromGin(c)
	params.OptionTicker = c.Param("option_ticker")

	query, err := models.NewOptionQuery(params, h.optionsService.Defaults())
	if err != nil {
		respondError(c, err)
		return
	}

	contract, err := h.optionsService.GetContract(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ContractResponse{OptionContract: contract})
}

func queryParamsFromGin(c *gin.Context) models.QueryParams {
	apiKey := c.GetHeader(APIKeyHeader)
	if apiKey == "" {
		apiKey = c.Query("api_key")
	}
	return models.QueryParams{
		TickerSymbol: c.Query("ticker_symbol"),
		APIKey:       apiKey,
		Limit:        c.Query("limit"),
		DaysForward:  c.Query("days_forward"),
		ContractType: c.Query("contract_type"),
	}
}

// HandleInvoke serves a Lambda invocation. Invalid input and provider
// error statuses are reported in the envelope; only failures to reach the
// provider fail the invocation.
func (h *OptionsHandler) HandleInvoke(ctx context.Context, raw json.RawMessage) (*lambda.Envelope, error) {
	inv, err := lambda.ParseEvent(ctx, raw)
	if err != nil {
		return lambda.NewEnvelope(lambda.RequestIDFromContext(ctx), models.ContractsResponse{
			OptionContracts: []models.OptionContract{},
			Error:           err.Error(),
		})
	}

	logger := logrus.WithFields(logrus.Fields{
		"request_id": inv.RequestID,
		"source":     inv.Source,
	})
	logger.Info("Received invocation")

	query, err := models.NewOptionQuery(inv.Params, h.optionsService.Defaults())
	if err != nil {
		logger.WithError(err).Warn("Rejected invocation")
		return lambda.NewEnvelope(inv.RequestID, models.ContractsResponse{
			OptionContracts: []models.OptionContract{},
			Error:           err.Error(),
		})
	}
	if query.OptionTicker != "" {
		return h.invokeGetContract(ctx, logger, inv.RequestID, query)
	}

	resp, err := h.optionsService.ListContracts(ctx, query)
	if err != nil {
		if !isClientFacing(err) {
			logger.WithError(err).Error("Invocation failed")
			return nil, err
		}
		logger.WithError(err).Warn("Returning empty contract list")
		resp = &models.ContractsResponse{
			OptionContracts: []models.OptionContract{},
			Error:           err.Error(),
		}
	}

	return lambda.NewEnvelope(inv.RequestID, resp)
}

func (h *OptionsHandler) invokeGetContract(ctx context.Context, logger *logrus.Entry, requestID string, query *models.OptionQuery) (*lambda.Envelope, error) {
	contract, err := h.optionsService.GetContract(ctx, query)
	if err != nil {
		if !isClientFacing(err) {
			logger.WithError(err).Error("Invocation failed")
			return nil, err
		}
		logger.WithError(err).Warn("Contract lookup failed")
		return lambda.NewEnvelope(requestID, models.ContractResponse{Error: err.Error()})
	}
	return lambda.NewEnvelope(requestID, models.ContractResponse{OptionContract: contract})
}
