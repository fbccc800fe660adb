// Package weather talks to the regional weather backend used to decorate
// diary entries. The ledgers never depend on it.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/models"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = constants.DefaultWeatherOrigin
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: constants.WeatherTimeout},
	}
}

// ValidateCoordinates rejects latitudes and longitudes outside the globe
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

// Fetch returns the weather for a coordinate
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (models.RegionWeather, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return models.RegionWeather{}, err
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	endpoint := c.BaseURL + "/api/weather?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, constants.WeatherTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.RegionWeather{}, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return models.RegionWeather{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.RegionWeather{}, fmt.Errorf("weather API HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var w models.RegionWeather
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return models.RegionWeather{}, fmt.Errorf("failed to decode weather response: %w", err)
	}
	return w, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Place returns the address, falling back to "sido sigungu"
func Place(w models.RegionWeather) string {
	if addr := deref(w.AddressName); addr != "" {
		return addr
	}
	var parts []string
	for _, p := range []string{deref(w.Sido), deref(w.Sigungu)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BadgeText is the short "place · N°C" label shown next to the date
func BadgeText(w models.RegionWeather) string {
	where := Place(w)
	if w.Temperature2m == nil {
		return where
	}
	return fmt.Sprintf("%s · %d°C", where, int(math.Round(*w.Temperature2m)))
}

var wmoLabels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime fog",
	51: "Light drizzle",
	53: "Drizzle",
	55: "Dense drizzle",
	56: "Freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Light rain",
	63: "Rain",
	65: "Heavy rain",
	66: "Freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers",
	81: "Heavy rain showers",
	82: "Violent rain showers",
	85: "Snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with heavy hail",
}

// Describe maps a WMO weather code to a label
func Describe(code *int) string {
	if code == nil {
		return ""
	}
	if label, ok := wmoLabels[*code]; ok {
		return label
	}
	return fmt.Sprintf("WMO %d", *code)
}
