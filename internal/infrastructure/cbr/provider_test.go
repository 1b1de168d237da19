package cbr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCBRProvider_Fetch(t *testing.T) {
	t.Run("returns parsed rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Valute": {
				"USD": {"Name": "Доллар США", "Nominal": 1, "Value": 91.2, "Previous": 90.8},
				"EUR": {"Name": "Евро", "Nominal": 1, "Value": 99.1, "Previous": 98.6}
			}}`)
		}))
		defer server.Close()

		provider := NewCBRProvider(server.URL, 5*time.Second, zap.NewNop())
		rates := provider.Fetch(context.Background())

		require.Len(t, rates, 2)
		// codes are sorted, EUR first
		assert.Equal(t, "EUR", rates[0].Code)
		assert.Equal(t, "USD", rates[1].Code)
		assert.Equal(t, "Доллар США", rates[1].Name)
		assert.Equal(t, 91.2, rates[1].Value)
		assert.Equal(t, 90.8, rates[1].Previous)
		assert.Equal(t, 1, rates[1].Nominal)
	})

	t.Run("caps the record count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Valute": {`)
			for i := 0; i < 15; i++ {
				if i > 0 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `"C%02d": {"Name": "Currency %d", "Nominal": 1, "Value": %d.5, "Previous": %d.0}`, i, i, i+1, i+1)
			}
			fmt.Fprint(w, `}}`)
		}))
		defer server.Close()

		provider := NewCBRProvider(server.URL, 5*time.Second, zap.NewNop())
		rates := provider.Fetch(context.Background())

		assert.Len(t, rates, maxRecords)
	})

	t.Run("falls back on server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := NewCBRProvider(server.URL, 5*time.Second, zap.NewNop())
		rates := provider.Fetch(context.Background())

		require.Len(t, rates, 2)
		assert.Equal(t, "USD", rates[0].Code)
		assert.Equal(t, 90.50, rates[0].Value)
		assert.Equal(t, 90.25, rates[0].Previous)
		assert.Equal(t, "EUR", rates[1].Code)
		assert.Equal(t, 98.75, rates[1].Value)
	})

	t.Run("falls back on malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json at all`)
		}))
		defer server.Close()

		provider := NewCBRProvider(server.URL, 5*time.Second, zap.NewNop())
		rates := provider.Fetch(context.Background())

		require.Len(t, rates, 2)
		assert.Equal(t, "USD", rates[0].Code)
		assert.Equal(t, "EUR", rates[1].Code)
	})

	t.Run("falls back on unreachable host", func(t *testing.T) {
		provider := NewCBRProvider("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())
		rates := provider.Fetch(context.Background())

		require.Len(t, rates, 2)
	})
}
