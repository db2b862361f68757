package sunrisesunset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchDecodesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json", r.URL.Path)
		require.Equal(t, "1.35", r.URL.Query().Get("lat"))
		require.Equal(t, "103.8", r.URL.Query().Get("lng"))
		w.Write([]byte(`{
			"results": {
				"date": "2024-06-15",
				"sunrise": "6:58:20 AM",
				"sunset": "7:10:44 PM",
				"first_light": "5:28:05 AM",
				"last_light": "8:40:59 PM",
				"day_length": "12:12:24",
				"timezone": "Asia/Singapore"
			},
			"status": "OK"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	record, err := client.Fetch(context.Background(), 1.35, 103.8)
	require.NoError(t, err)
	require.Equal(t, "2024-06-15", record.Date)
	require.Equal(t, "6:58:20 AM", record.Sunrise)
	require.Equal(t, "12:12:24", record.DayLength)
	require.Equal(t, "Asia/Singapore", record.Timezone)
}

func TestFetchRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{},"status":"INVALID_REQUEST"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), 200, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestFetchRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), 1.35, 103.8)
	require.Error(t, err)
}
