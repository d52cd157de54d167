package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found. Please enter a valid location name.",
		http.StatusNotFound,
	)

	ErrIPLocationFailed = New(
		"IP_LOCATION_FAILED",
		"Unable to fetch user location. Please try another method.",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrNoData = New(
		"NO_DATA",
		"No data available to send. Please fetch Landsat data first.",
		http.StatusNotFound,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Upstream service returned an error",
		http.StatusBadGateway,
	)

	ErrTimestampParse = New(
		"TIMESTAMP_PARSE_ERROR",
		"Unrecognized overpass timestamp format",
		http.StatusBadGateway,
	)

	ErrDeliveryFailure = New(
		"DELIVERY_FAILURE",
		"Failed to send email.",
		http.StatusBadGateway,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found or expired",
		http.StatusNotFound,
	)

	ErrLocationNotSet = New(
		"LOCATION_NOT_SET",
		"Select a location before querying",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
