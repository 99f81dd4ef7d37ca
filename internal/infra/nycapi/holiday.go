package nycapi

import (
	"context"
	"fmt"
)

// HolidayClient asks DSNY whether collection runs on the holiday schedule today.
type HolidayClient struct {
	client *Client
	url    string
}

func NewHolidayClient(client *Client, endpoint string) *HolidayClient {
	return &HolidayClient{client: client, url: endpoint}
}

// IsHolidayToday implements collection.HolidayChecker. The endpoint answers
// with a bare JSON boolean.
func (h *HolidayClient) IsHolidayToday(ctx context.Context) (bool, error) {
	var holiday bool
	if err := h.client.getJSON(ctx, h.url, &holiday); err != nil {
		return false, fmt.Errorf("holiday check: %w", err)
	}
	return holiday, nil
}
