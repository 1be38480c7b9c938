package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"communityconnect.org/internal/geo"
)

// ParseFloatParam retrieves a float64 value from the provided URL query parameters.
// If the key is not present it returns 0. If the value is invalid it returns 0
// and records the problem in fieldErrors.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return 0, fieldErrors
	}
	return f, fieldErrors
}

// ParseIntParam is the integer counterpart of ParseFloatParam.
func ParseIntParam(params url.Values, key string, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return 0, fieldErrors
	}
	return n, fieldErrors
}

// ParseOptionalCoordinate reads the lat and lon query parameters. It returns
// nil when neither is present. Supplying only one of them, or values out of
// range, is recorded in fieldErrors.
func ParseOptionalCoordinate(params url.Values, fieldErrors map[string][]string) (*geo.Coordinate, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	hasLat, hasLon := params.Get("lat") != "", params.Get("lon") != ""
	switch {
	case !hasLat && !hasLon:
		return nil, fieldErrors
	case !hasLat:
		fieldErrors["lat"] = append(fieldErrors["lat"], "lat is required when lon is given")
		return nil, fieldErrors
	case !hasLon:
		fieldErrors["lon"] = append(fieldErrors["lon"], "lon is required when lat is given")
		return nil, fieldErrors
	}

	before := len(fieldErrors)
	lat, fieldErrors := ParseFloatParam(params, "lat", fieldErrors)
	lon, fieldErrors := ParseFloatParam(params, "lon", fieldErrors)
	if len(fieldErrors) > before {
		return nil, fieldErrors
	}

	for field, msgs := range ValidateLocationParams(lat, lon, 0) {
		fieldErrors[field] = append(fieldErrors[field], msgs...)
	}
	if len(fieldErrors) > before {
		return nil, fieldErrors
	}

	return &geo.Coordinate{Lat: lat, Lon: lon}, fieldErrors
}
