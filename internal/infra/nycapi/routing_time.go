package nycapi

import (
	"context"
	"fmt"
	"net/url"
)

// RoutingTimeClient reads residential pickup windows from the 311 routing time service.
type RoutingTimeClient struct {
	client *Client
	url    string
}

func NewRoutingTimeClient(client *Client, endpoint string) *RoutingTimeClient {
	return &RoutingTimeClient{client: client, url: endpoint}
}

type routingTimeResponse struct {
	ResidentialRoutingTime string `json:"residentialRoutingTime"`
	CommercialRoutingTime  string `json:"commercialRoutingTime"`
}

// RoutingTime implements collection.RoutingTimeFetcher.
func (r *RoutingTimeClient) RoutingTime(ctx context.Context, district, section string) (string, error) {
	q := url.Values{}
	q.Set("district", district)
	q.Set("section", section)

	var body routingTimeResponse
	if err := r.client.getJSON(ctx, r.url+"?"+q.Encode(), &body); err != nil {
		return "", fmt.Errorf("routing time: %w", err)
	}
	return body.ResidentialRoutingTime, nil
}
