package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/powerclass/marketctl/core/model"
)

// Market event endpoints are optional backend features. Each method checks
// the advertised capability set first and returns ErrUnsupported when the
// backend lacks the routes, so callers can distinguish "no events" from
// "endpoint unimplemented".

func (c *Client) requireMarketEvents(ctx context.Context) error {
	caps, err := c.Capabilities(ctx)
	if err != nil {
		return err
	}
	if !caps.MarketEvents {
		return ErrUnsupported
	}
	return nil
}

// ListMarketEvents returns the session's configured events.
func (c *Client) ListMarketEvents(ctx context.Context, sessionID string) ([]model.MarketEvent, error) {
	if err := c.requireMarketEvents(ctx); err != nil {
		return nil, err
	}
	var out []model.MarketEvent
	err := c.do(ctx, callOpts{
		method:        http.MethodGet,
		route:         "/game-sessions/{id}/market-events",
		path:          sessionPath(sessionID, "/market-events"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// CreateMarketEvent configures a new event (instructor only).
func (c *Client) CreateMarketEvent(ctx context.Context, sessionID string, ev model.MarketEvent) (model.MarketEvent, error) {
	if err := c.requireMarketEvents(ctx); err != nil {
		return model.MarketEvent{}, err
	}
	var out model.MarketEvent
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/market-events",
		path:          sessionPath(sessionID, "/market-events"),
		body:          ev,
		sessionScoped: true,
	}, &out)
	return out, err
}

// TriggerMarketEvent fires a configured event immediately (instructor only).
func (c *Client) TriggerMarketEvent(ctx context.Context, sessionID, eventID string) (StatusMessage, error) {
	if err := c.requireMarketEvents(ctx); err != nil {
		return StatusMessage{}, err
	}
	var out StatusMessage
	err := c.do(ctx, callOpts{
		method:        http.MethodPost,
		route:         "/game-sessions/{id}/market-events/{event}/trigger",
		path:          sessionPath(sessionID, "/market-events/"+url.PathEscape(eventID)+"/trigger"),
		sessionScoped: true,
	}, &out)
	return out, err
}

// DeleteMarketEvent removes a configured event (instructor only).
func (c *Client) DeleteMarketEvent(ctx context.Context, sessionID, eventID string) error {
	if err := c.requireMarketEvents(ctx); err != nil {
		return err
	}
	return c.do(ctx, callOpts{
		method:        http.MethodDelete,
		route:         "/game-sessions/{id}/market-events/{event}",
		path:          sessionPath(sessionID, "/market-events/"+url.PathEscape(eventID)),
		sessionScoped: true,
	}, nil)
}
