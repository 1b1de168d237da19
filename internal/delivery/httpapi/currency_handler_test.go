package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
	"github.com/mkartashov/currency-rates-service/internal/usecase"
	currencydto "github.com/mkartashov/currency-rates-service/internal/usecase/dto/currency"
)

type mockCurrencyUsecase struct {
	mock.Mock
}

func (m *mockCurrencyUsecase) GetAll() ([]*domain.Currency, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Currency), args.Error(1)
}

func (m *mockCurrencyUsecase) GetByCode(code string) (*domain.Currency, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *mockCurrencyUsecase) Create(ctx context.Context, input currencydto.CreateCurrencyInput) (*domain.Currency, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *mockCurrencyUsecase) Update(ctx context.Context, code string, input currencydto.UpdateCurrencyInput) (*domain.Currency, error) {
	args := m.Called(ctx, code, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *mockCurrencyUsecase) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *mockCurrencyUsecase) GetHistory(currencyID string) ([]*domain.CurrencyHistory, error) {
	args := m.Called(currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CurrencyHistory), args.Error(1)
}

type mockSyncUsecase struct {
	mock.Mock
}

func (m *mockSyncUsecase) RunOnce(ctx context.Context) (usecase.SyncSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.SyncSummary), args.Error(1)
}

func (m *mockSyncUsecase) StartWorker(ctx context.Context) {
	m.Called(ctx)
}

func newTestRouter(currencyUC usecase.CurrencyUsecase, syncUC usecase.SyncUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCurrencyHandler(currencyUC, syncUC, zap.NewNop()).RegisterRoutes(router)
	return router
}

func storedUSD() *domain.Currency {
	return &domain.Currency{
		ID:        "5bd7e2a6-6f2e-4a39-9f2c-0d4f4f1f0a11",
		Code:      "USD",
		Name:      "Доллар США",
		Value:     90.50,
		Previous:  90.25,
		Nominal:   1,
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCurrencyHandler_List(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("GetAll").Return([]*domain.Currency{storedUSD()}, nil)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/currencies", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "USD", body[0]["code"])
	assert.Equal(t, 90.50, body[0]["value"])
}

func TestCurrencyHandler_GetNotFound(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("GetByCode", "XXX").Return(nil, domain.ErrCurrencyNotFound)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/currencies/XXX", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail": "Currency not found"}`, rec.Body.String())
}

func TestCurrencyHandler_Create(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("Create", mock.Anything, currencydto.CreateCurrencyInput{
		Code:  "usd",
		Name:  "Доллар США",
		Value: 90.50,
	}).Return(storedUSD(), nil)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	payload := `{"code":"usd","name":"Доллар США","value":90.50}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/currencies", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "USD", body["code"])
	currencyUC.AssertExpectations(t)
}

func TestCurrencyHandler_CreateDuplicate(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrCurrencyExists)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	payload := `{"code":"USD","name":"Доллар США","value":90.50}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/currencies", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail": "Currency with this code already exists"}`, rec.Body.String())
}

func TestCurrencyHandler_CreateMissingFields(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/currencies", strings.NewReader(`{"code":"USD"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	currencyUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCurrencyHandler_Update(t *testing.T) {
	updated := storedUSD()
	updated.Value = 91.00
	updated.Previous = 90.50

	newValue := 91.00
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("Update", mock.Anything, "USD", currencydto.UpdateCurrencyInput{Value: &newValue}).
		Return(updated, nil)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/currencies/USD", strings.NewReader(`{"value":91.00}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 91.00, body["value"])
	assert.Equal(t, 90.50, body["previous"])
}

func TestCurrencyHandler_Delete(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("Delete", mock.Anything, "USD").Return(nil)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/currencies/USD", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	currencyUC.AssertExpectations(t)
}

func TestCurrencyHandler_History(t *testing.T) {
	currencyUC := new(mockCurrencyUsecase)
	currencyUC.On("GetHistory", "5bd7e2a6-6f2e-4a39-9f2c-0d4f4f1f0a11").Return([]*domain.CurrencyHistory{
		{
			ID:         "0a0a0a0a-1111-2222-3333-444444444444",
			CurrencyID: "5bd7e2a6-6f2e-4a39-9f2c-0d4f4f1f0a11",
			Value:      90.25,
			Previous:   90.00,
			CheckedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil)
	router := newTestRouter(currencyUC, new(mockSyncUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/5bd7e2a6-6f2e-4a39-9f2c-0d4f4f1f0a11", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 90.25, body[0]["value"])
}

func TestCurrencyHandler_ForceSync(t *testing.T) {
	syncDone := make(chan struct{})
	syncUC := new(mockSyncUsecase)
	syncUC.On("RunOnce", mock.Anything).
		Run(func(mock.Arguments) { close(syncDone) }).
		Return(usecase.SyncSummary{Added: 1}, nil)
	router := newTestRouter(new(mockCurrencyUsecase), syncUC)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/run", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status": "Currency update started in background"}`, rec.Body.String())

	select {
	case <-syncDone:
	case <-time.After(2 * time.Second):
		t.Fatal("background sync was never started")
	}
}
