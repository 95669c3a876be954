package httpclient

import (
	"net/http"
	"strings"
	"time"

	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/metrics"
)

// blockedMarkers are substrings of transport errors raised when a request is refused
// before reaching the server by a content blocker or a filtering proxy
var blockedMarkers = []string{
	"ERR_BLOCKED_BY_CLIENT",
	"proxyconnect",
}

// interceptRequest stamps headers on every outgoing request
func (c *Client) interceptRequest(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if id := c.requestID(); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// interceptTransportError handles requests that produced no response
func (c *Client) interceptTransportError(req *http.Request, start time.Time, err error) error {
	elapsed := c.now().Sub(start)
	fields := logging.Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"status":  "none",
		"message": err.Error(),
	}

	if IsBlocked(err) {
		c.logger.Warn("Request blocked by a content blocker or filtering proxy. Please allow this site.", logging.Fields{
			"url": req.URL.String(),
		})
		c.logger.Error("API request error", fields)
		c.metrics.Observe(req.Method, metrics.OutcomeBlocked, elapsed)
		return errors.NewBlockedError(req.Method, req.URL.String(), err)
	}

	c.logger.Error("API request error", fields)
	c.metrics.Observe(req.Method, metrics.OutcomeNetwork, elapsed)
	return errors.NewNetworkError(req.Method, req.URL.String(), err)
}

// interceptStatusError handles non-2xx responses; the HTTPError is returned unchanged
func (c *Client) interceptStatusError(req *http.Request, start time.Time, httpErr *HTTPError) error {
	c.logger.Error("API request error", logging.Fields{
		"method":  httpErr.Method,
		"url":     httpErr.URL,
		"status":  httpErr.StatusCode,
		"message": httpErr.Message,
	})
	c.metrics.Observe(req.Method, metrics.OutcomeForStatus(httpErr.StatusCode), c.now().Sub(start))
	return httpErr
}

// IsBlocked reports whether a transport error looks like client-side request blocking
func IsBlocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range blockedMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
