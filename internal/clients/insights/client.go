package insights

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/INTeniola/monie-hackathon/internal/config"
	"github.com/INTeniola/monie-hackathon/internal/models"
)

const analyticsPath = "/analytics"

// Client fetches the pre-aggregated analytics report from the remote
// endpoint. The report is consumed read-only; nothing in this service
// produces it.
type Client interface {
	Fetch(ctx context.Context) (*models.InsightsReport, error)
}

type restyClient struct {
	http *resty.Client
}

// NewClient creates a client bound to the configured analytics endpoint.
func NewClient(cfg config.InsightsConfig) Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &restyClient{http: client}
}

func (c *restyClient) Fetch(ctx context.Context) (*models.InsightsReport, error) {
	var report models.InsightsReport

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&report).
		Get(analyticsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch analytics: unexpected status %s", resp.Status())
	}

	return &report, nil
}
