// Package geolocation implements the LocationProvider port against the
// platform's position endpoint. The capability is best-effort and every
// failure mode collapses to one outcome for callers: no position right now.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/ports"
	"agenthub/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// positionDTO is the endpoint's response shape.
type positionDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Provider implements ports.LocationProvider over HTTP. Acquisition is
// bounded by a timeout so an unresponsive capability degrades to
// ErrLocationUnavailable instead of stalling the accept flow.
type Provider struct {
	endpoint string
	client   *http.Client
}

// NewProvider creates a provider for the given position endpoint.
// A zero timeout selects a default of 5s.
func NewProvider(endpoint string, timeout time.Duration) (*Provider, error) {
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("endpoint", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Provider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Acquire fetches the agent's current position. Any failure (transport,
// denial, timeout, malformed payload) is reported as ErrLocationUnavailable.
func (p *Provider) Acquire(ctx context.Context) (kernel.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return kernel.Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("position fetch did not complete: %w",
			errors.Join(ports.ErrLocationUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Location{}, fmt.Errorf("position endpoint returned HTTP %d: %w",
			resp.StatusCode, ports.ErrLocationUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("position payload truncated: %w",
			errors.Join(ports.ErrLocationUnavailable, err))
	}

	var dto positionDTO
	if err = json.Unmarshal(body, &dto); err != nil {
		return kernel.Location{}, fmt.Errorf("position payload is malformed: %w",
			errors.Join(ports.ErrLocationUnavailable, err))
	}

	location, err := kernel.NewLocation(dto.Lat, dto.Lon)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("position payload is out of range: %w",
			errors.Join(ports.ErrLocationUnavailable, err))
	}
	return location, nil
}
