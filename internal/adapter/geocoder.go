package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/logger"
)

// reverseGeocodeResponse is the subset of the Nominatim reverse response the
// adapter cares about.
type reverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
}

type httpGeocoder struct {
	client *resty.Client
	cache  *lru.Cache[string, string]
	logger *logger.Logger
}

// NewHTTPGeocoder constructs a [Geocoder] backed by a Nominatim-compatible
// reverse-geocoding endpoint. Results are cached in an LRU keyed by rounded
// coordinates; cfg.CacheSize of zero disables the cache.
//
// Returns an error if cfg.GeocoderBaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPGeocoder(cfg config.Adapter, logger *logger.Logger) (Geocoder, error) {
	baseURL, err := normalizeBaseURL(cfg.GeocoderBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	var cache *lru.Cache[string, string]
	if cfg.CacheSize > 0 {
		cache, err = lru.New[string, string](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("geocoder cache init: %w", err)
		}
	}

	return &httpGeocoder{client: client, cache: cache, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ReverseGeocode implements [Geocoder]. It GETs /reverse with the given
// coordinates and returns the provider's display name. Cache hits skip the
// network round trip entirely.
func (g *httpGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	log := logger.FromContext(ctx)

	key := cacheKey(latitude, longitude)
	if g.cache != nil {
		if address, ok := g.cache.Get(key); ok {
			return address, nil
		}
	}

	var result reverseGeocodeResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":    strconv.FormatFloat(latitude, 'f', -1, 64),
			"lon":    strconv.FormatFloat(longitude, 'f', -1, 64),
			"format": "jsonv2",
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		log.Err(err).
			Str("func", "httpGeocoder.ReverseGeocode").
			Float64("lat", latitude).
			Float64("lng", longitude).
			Msg("reverse geocoding request failed")
		return "", fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}

	if resp.IsError() {
		log.Warn().
			Str("func", "httpGeocoder.ReverseGeocode").
			Int("status", resp.StatusCode()).
			Msg("reverse geocoding returned error status")
		return "", fmt.Errorf("%w: status %d", ErrGeocodingFailed, resp.StatusCode())
	}

	if result.DisplayName == "" {
		return "", fmt.Errorf("%w: empty display name", ErrGeocodingFailed)
	}

	if g.cache != nil {
		g.cache.Add(key, result.DisplayName)
	}

	return result.DisplayName, nil
}

// cacheKey rounds coordinates to ~11m precision so nearby lookups share an
// entry.
func cacheKey(latitude, longitude float64) string {
	return strconv.FormatFloat(latitude, 'f', 4, 64) + "," + strconv.FormatFloat(longitude, 'f', 4, 64)
}
