package alexa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainAlexa "refuse_day_skill/internal/domain/alexa"

	"github.com/goccy/go-json"
)

// DefaultAPIEndpoint is used when a request carries no apiEndpoint.
const DefaultAPIEndpoint = "https://api.amazonalexa.com"

// DeviceClient implements domainAlexa.DeviceClient over the Alexa settings APIs.
type DeviceClient struct {
	httpClient *http.Client
}

func NewDeviceClient(timeout time.Duration) *DeviceClient {
	return &DeviceClient{httpClient: &http.Client{Timeout: timeout}}
}

// FullAddress reads the address the user set for the device. A device without
// an address yields an empty, incomplete Address.
func (c *DeviceClient) FullAddress(ctx context.Context, device domainAlexa.Device) (*domainAlexa.Address, error) {
	var address domainAlexa.Address
	path := fmt.Sprintf("/v1/devices/%s/settings/address", url.PathEscape(device.ID))
	if err := c.get(ctx, device, "device address", path, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// TimeZone reads the device's configured time zone, e.g. "America/New_York".
func (c *DeviceClient) TimeZone(ctx context.Context, device domainAlexa.Device) (string, error) {
	var zone string
	path := fmt.Sprintf("/v2/devices/%s/settings/System.timeZone", url.PathEscape(device.ID))
	if err := c.get(ctx, device, "time zone", path, &zone); err != nil {
		return "", err
	}
	return zone, nil
}

func (c *DeviceClient) get(ctx context.Context, device domainAlexa.Device, operation, path string, out interface{}) error {
	endpoint := strings.TrimRight(device.APIEndpoint, "/")
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+device.APIAccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		// nothing configured for the device, out keeps its zero value
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &domainAlexa.ServiceError{Operation: operation, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}
