// Package adapter provides clients for external services.
//
// The primary abstraction is [Geocoder], which resolves coordinates to a
// human-readable address. The package ships an HTTP implementation backed by
// a Nominatim-compatible reverse-geocoding API ([NewHTTPGeocoder]) with an
// in-memory LRU cache in front of it.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/geocoder_mock.go -package=mock

// Geocoder resolves geographic coordinates to a display address.
// Implementations are responsible for transport, caching, and mapping
// provider errors to [ErrGeocodingFailed].
type Geocoder interface {
	// ReverseGeocode returns the display address for the given coordinates.
	// Returns a wrapped [ErrGeocodingFailed] when the provider cannot be
	// reached or responds without an address.
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}
