package adapter

import "errors"

// ErrGeocodingFailed wraps every provider-side reverse-geocoding failure.
var ErrGeocodingFailed = errors.New("reverse geocoding failed")
