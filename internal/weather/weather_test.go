package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julianstephens/questlog/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestFetch(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/weather" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"addressName":"Seoul Jung-gu","sido":"Seoul","sigungu":"Jung-gu","dong":null,
			"lat":37.56,"lon":126.97,"temperature2m":21.6,"humidity":40,"apparentTemperature":null,"weatherCode":2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret")
	w, err := c.Fetch(context.Background(), 37.56, 126.97)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(gotQuery, "lat=37.56") || !strings.Contains(gotQuery, "lon=126.97") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if w.Dong != nil || w.ApparentTemperature != nil {
		t.Error("null fields should decode as nil")
	}
	if got := BadgeText(w); got != "Seoul Jung-gu · 22°C" {
		t.Errorf("BadgeText = %q", got)
	}
	if got := Describe(w.WeatherCode); got != "Partly cloudy" {
		t.Errorf("Describe = %q", got)
	}
}

func TestFetchWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("no Authorization header expected")
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").Fetch(context.Background(), 0, 0); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Fetch(context.Background(), 10, 10)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected HTTP 502 error, got %v", err)
	}

	if _, err := c.Fetch(context.Background(), 91, 0); err == nil {
		t.Error("expected latitude range error")
	}
	if _, err := c.Fetch(context.Background(), 0, -181); err == nil {
		t.Error("expected longitude range error")
	}
}

func TestFetchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(srv.URL, "").Fetch(ctx, 1, 1); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestBadgeText(t *testing.T) {
	tests := []struct {
		name string
		w    models.RegionWeather
		want string
	}{
		{"address and temperature", models.RegionWeather{AddressName: ptr("Busan"), Temperature2m: ptr(-0.4)}, "Busan · 0°C"},
		{"fallback to sido sigungu", models.RegionWeather{Sido: ptr("Seoul"), Sigungu: ptr("Mapo-gu")}, "Seoul Mapo-gu"},
		{"only sigungu", models.RegionWeather{Sigungu: ptr("Mapo-gu"), Temperature2m: ptr(3.5)}, "Mapo-gu · 4°C"},
		{"empty", models.RegionWeather{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BadgeText(tt.w); got != tt.want {
				t.Errorf("BadgeText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(nil); got != "" {
		t.Errorf("Describe(nil) = %q", got)
	}
	if got := Describe(ptr(42)); got != "WMO 42" {
		t.Errorf("Describe(42) = %q", got)
	}
}
