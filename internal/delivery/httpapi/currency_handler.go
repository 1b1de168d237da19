package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/delivery/httpapi/dto"
	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/usecase"
	currencydto "github.com/mkartashov/currency-rates-service/internal/usecase/dto/currency"
)

const forceSyncTimeout = time.Minute

type CurrencyHandler struct {
	currencyUC usecase.CurrencyUsecase
	syncUC     usecase.SyncUsecase
	logger     *zap.Logger
}

func NewCurrencyHandler(currencyUC usecase.CurrencyUsecase, syncUC usecase.SyncUsecase, logger *zap.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencyUC: currencyUC,
		syncUC:     syncUC,
		logger:     logger,
	}
}

func (h *CurrencyHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/currencies", h.List)
	router.GET("/currencies/:code", h.Get)
	router.POST("/currencies", h.Create)
	router.PATCH("/currencies/:code", h.Update)
	router.DELETE("/currencies/:code", h.Delete)
	router.GET("/history/:currency_id", h.History)
	router.POST("/tasks/run", h.ForceSync)
}

func (h *CurrencyHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Currency Rates API",
		"endpoints": gin.H{
			"REST API": gin.H{
				"GET /currencies":            "List all currencies",
				"GET /currencies/{code}":     "Get currency by code",
				"POST /currencies":           "Create currency",
				"PATCH /currencies/{code}":   "Update currency",
				"DELETE /currencies/{code}":  "Delete currency",
				"GET /history/{currency_id}": "Get currency history",
				"POST /tasks/run":            "Force update currencies",
			},
			"WebSocket": gin.H{
				"WS /ws/currencies": "Real-time notifications",
			},
		},
	})
}

func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencyUC.GetAll()
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]dto.CurrencyResponse, 0, len(currencies))
	for _, currency := range currencies {
		response = append(response, dto.ToCurrencyResponse(currency))
	}
	c.JSON(http.StatusOK, response)
}

func (h *CurrencyHandler) Get(c *gin.Context) {
	currency, err := h.currencyUC.GetByCode(c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

func (h *CurrencyHandler) Create(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	currency, err := h.currencyUC.Create(c.Request.Context(), currencydto.CreateCurrencyInput{
		Code:     req.Code,
		Name:     req.Name,
		Value:    req.Value,
		Previous: req.Previous,
		Nominal:  req.Nominal,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

func (h *CurrencyHandler) Update(c *gin.Context) {
	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	currency, err := h.currencyUC.Update(c.Request.Context(), c.Param("code"), currencydto.UpdateCurrencyInput{
		Name:     req.Name,
		Value:    req.Value,
		Previous: req.Previous,
		Nominal:  req.Nominal,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

func (h *CurrencyHandler) Delete(c *gin.Context) {
	if err := h.currencyUC.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CurrencyHandler) History(c *gin.Context) {
	entries, err := h.currencyUC.GetHistory(c.Param("currency_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]dto.CurrencyHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.ToCurrencyHistoryResponse(entry))
	}
	c.JSON(http.StatusOK, response)
}

// ForceSync kicks off one sync iteration in the background and returns
// immediately.
func (h *CurrencyHandler) ForceSync(c *gin.Context) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), forceSyncTimeout)
		defer cancel()
		if _, err := h.syncUC.RunOnce(ctx); err != nil {
			h.logger.Error("forced currency sync failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "Currency update started in background"})
}

func (h *CurrencyHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCurrencyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Currency not found"})
	case errors.Is(err, domain.ErrCurrencyExists):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Currency with this code already exists"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
