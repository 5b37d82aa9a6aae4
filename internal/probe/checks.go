package probe

import (
	"context"
	"net/http"
	"strings"

	"hbsmoke/internal/config"
	"hbsmoke/internal/domain"
)

// Check names, in run order
const (
	AppAccessibility = "App Accessibility"
	HTMLStructure    = "HTML Structure"
	StaticAssets     = "Static Assets"
)

// Prober holds the three frontend checks
type Prober struct {
	config *config.Config
	client *Client
}

// NewProber creates a new Prober
func NewProber(cfg *config.Config, client *Client) *Prober {
	return &Prober{config: cfg, client: client}
}

// AppReachable passes when the base URL answers 200 and the page carries the app marker
func (p *Prober) AppReachable(ctx context.Context) (bool, error) {
	resp, err := p.client.Get(ctx, p.config.GetBaseURL())
	if err != nil {
		return false, err
	}
	return resp.StatusCode == http.StatusOK && strings.Contains(resp.Body, p.config.Markers.App), nil
}

// HTMLStructureOK passes when the page contains the root container, the branding
// and the script reference. The status code is not inspected.
func (p *Prober) HTMLStructureOK(ctx context.Context) (bool, error) {
	resp, err := p.client.Get(ctx, p.config.GetBaseURL())
	if err != nil {
		return false, err
	}
	return containsAll(resp.Body,
		p.config.Markers.Root,
		p.config.Markers.Brand,
		p.config.Markers.Script,
	), nil
}

// StaticAssetOK passes when the static asset answers exactly 200
func (p *Prober) StaticAssetOK(ctx context.Context) (bool, error) {
	resp, err := p.client.Get(ctx, p.config.GetAssetURL())
	if err != nil {
		return false, err
	}
	return resp.StatusCode == http.StatusOK, nil
}

// Checks returns the suite in its fixed order
func (p *Prober) Checks() []domain.Check {
	return []domain.Check{
		{Name: AppAccessibility, Info: "GET " + p.config.GetBaseURL() + " returns 200 with the app marker", Fn: p.AppReachable},
		{Name: HTMLStructure, Info: "GET " + p.config.GetBaseURL() + " contains root div, branding and script", Fn: p.HTMLStructureOK},
		{Name: StaticAssets, Info: "GET " + p.config.GetAssetURL() + " returns 200", Fn: p.StaticAssetOK},
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
