package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentDecodesConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"main":{"temp":27.4,"humidity":83}}`))
	}))
	defer server.Close()

	client, err := NewClient("secret", server.URL)
	require.NoError(t, err)

	conditions, err := client.Current(context.Background(), 1.35, 103.8)
	require.NoError(t, err)
	require.Equal(t, 27.4, conditions.TemperatureC)
	require.Equal(t, 83.0, conditions.Humidity)
}

func TestCurrentRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient("bad", server.URL)
	require.NoError(t, err)

	_, err = client.Current(context.Background(), 1.35, 103.8)
	require.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", "")
	require.Error(t, err)
}
