package nycapi

import (
	"context"
	"fmt"
	"net/url"

	"refuse_day_skill/internal/domain/collection"
)

const geoclientStatusOK = "OK"

// GeoclientClient resolves street addresses through the NYC Geoclient search API.
type GeoclientClient struct {
	client  *Client
	baseURL string
	appID   string
	appKey  string
}

func NewGeoclientClient(client *Client, baseURL, appID, appKey string) *GeoclientClient {
	return &GeoclientClient{client: client, baseURL: baseURL, appID: appID, appKey: appKey}
}

type geoclientSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Level    string           `json:"level"`
		Status   string           `json:"status"`
		Response geoclientAddress `json:"response"`
	} `json:"results"`
}

type geoclientAddress struct {
	SanitationDistrict                                 string `json:"sanitationDistrict"`
	SanitationCollectionSchedulingSectionAndSubsection string `json:"sanitationCollectionSchedulingSectionAndSubsection"`
	SanitationRegularCollectionSchedule                string `json:"sanitationRegularCollectionSchedule"`
	SanitationRecyclingCollectionSchedule              string `json:"sanitationRecyclingCollectionSchedule"`
	SanitationBulkPickupSchedule                       string `json:"sanitationBulkPickupSchedule"`
}

// Resolve implements collection.AddressResolver.
func (g *GeoclientClient) Resolve(ctx context.Context, address string) (*collection.ResolvedAddress, error) {
	q := url.Values{}
	q.Set("input", address)
	q.Set("app_id", g.appID)
	q.Set("app_key", g.appKey)

	var body geoclientSearchResponse
	if err := g.client.getJSON(ctx, g.baseURL+"/search.json?"+q.Encode(), &body); err != nil {
		return nil, fmt.Errorf("geoclient search: %w", err)
	}

	if body.Status != geoclientStatusOK || len(body.Results) == 0 {
		return nil, collection.ErrAddressNotFound
	}

	r := body.Results[0].Response
	return &collection.ResolvedAddress{
		District:      r.SanitationDistrict,
		Section:       r.SanitationCollectionSchedulingSectionAndSubsection,
		GarbageCode:   r.SanitationRegularCollectionSchedule,
		RecyclingCode: r.SanitationRecyclingCollectionSchedule,
		BulkCode:      r.SanitationBulkPickupSchedule,
	}, nil
}
