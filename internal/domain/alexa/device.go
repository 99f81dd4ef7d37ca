package alexa

import (
	"context"
	"fmt"
	"net/http"
)

// AddressPermission is the consent scope required to read the full device address.
const AddressPermission = "read::alexa:device:all:address"

// Address is the postal address registered for a device in the Alexa app.
type Address struct {
	AddressLine1     string `json:"addressLine1"`
	AddressLine2     string `json:"addressLine2"`
	AddressLine3     string `json:"addressLine3"`
	City             string `json:"city"`
	CountryCode      string `json:"countryCode"`
	DistrictOrCounty string `json:"districtOrCounty"`
	PostalCode       string `json:"postalCode"`
	StateOrRegion    string `json:"stateOrRegion"`
}

// Complete reports whether the address carries the street and zip needed for a lookup.
func (a Address) Complete() bool {
	return a.AddressLine1 != "" && a.PostalCode != ""
}

// Lookup is the single-line form sent to the geocoder.
func (a Address) Lookup() string {
	return a.AddressLine1 + " " + a.PostalCode
}

// Device identifies the device a request came from and how to reach its settings.
type Device struct {
	ID             string
	APIEndpoint    string // region specific, e.g. https://api.amazonalexa.com
	APIAccessToken string
}

// DeviceClient reads per-device settings from the Alexa service APIs.
// This keeps the conversation logic independent of the HTTP transport.
type DeviceClient interface {
	FullAddress(ctx context.Context, device Device) (*Address, error)
	TimeZone(ctx context.Context, device Device) (string, error)
}

// ServiceError is a non-2xx answer from an Alexa service API.
type ServiceError struct {
	Operation  string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("alexa %s: unexpected status %d", e.Operation, e.StatusCode)
}

// Forbidden reports whether the user has not granted the required permission.
func (e *ServiceError) Forbidden() bool {
	return e.StatusCode == http.StatusForbidden
}
