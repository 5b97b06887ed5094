package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var _ ports.CarrierTracker = &Client{}

// Client pulls tracking state over the carrier's HTTP API. It is the fallback
// path for webhooks the carrier never delivered; responses carry the carrier's
// raw vocabulary and are normalized downstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type trackingResponse struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	NDRReason  string `json:"ndr_reason"`
}

func (c *Client) Track(ctx context.Context, trackingID string) (ports.TrackingReport, error) {
	if trackingID == "" {
		return ports.TrackingReport{}, errs.NewValueIsRequiredError("trackingID")
	}

	endpoint := fmt.Sprintf("%s/v1/tracking/%s", c.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.TrackingReport{}, fmt.Errorf("create tracking request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.TrackingReport{}, fmt.Errorf("fetch tracking state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.TrackingReport{}, errs.NewObjectNotFoundError("trackingID", trackingID)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.TrackingReport{}, fmt.Errorf("carrier returned status %d for tracking %q", resp.StatusCode, trackingID)
	}

	var body trackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.TrackingReport{}, fmt.Errorf("decode tracking response: %w", err)
	}

	return ports.TrackingReport{
		TrackingID: body.TrackingID,
		RawStatus:  body.Status,
		RawNDR:     body.NDRReason,
	}, nil
}
