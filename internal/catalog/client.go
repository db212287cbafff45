package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/time/rate"

	"bookfind/internal/config"
	"bookfind/internal/logger"
	"bookfind/internal/metrics"
	"bookfind/internal/query"
	"bookfind/internal/search"
)

// maxBodyBytes caps how much of a response we are willing to read.
const maxBodyBytes = 8 << 20

// Client queries the public volumes endpoint.
type Client struct {
	endpoint *url.URL
	client   *http.Client
	limiter  *rate.Limiter
	schema   *gojsonschema.Schema
}

func New(cfg config.CatalogConfig) (*Client, error) {
	endpoint, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("catalog url %q: scheme and host are required", cfg.URL)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile volumes schema: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		endpoint: endpoint,
		client:   newHTTPClient(cfg),
		limiter:  rate.NewLimiter(limit, burst),
		schema:   schema,
	}, nil
}

func newHTTPClient(cfg config.CatalogConfig) *http.Client {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{Transport: t, Timeout: cfg.Timeout}
}

// URL builds the request URL for q. The query is rewritten for field
// shorthands and URL-encoded.
func (c *Client) URL(q string) string {
	u := *c.endpoint
	params := u.Query()
	params.Set("q", query.Rewrite(q))
	u.RawQuery = params.Encode()
	return u.String()
}

// Search issues one GET and shapes the response. Every failure is a *search.FetchError.
func (c *Client) Search(ctx context.Context, q string) (search.ResultSet, error) {
	start := time.Now()
	log := logger.For(ctx)

	rs, status, err := c.do(ctx, log, q)
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return search.ResultSet{}, err
	}
	metrics.SearchResults.Observe(float64(rs.Len()))
	return rs, nil
}

func (c *Client) do(ctx context.Context, log *logrus.Entry, q string) (search.ResultSet, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return search.ResultSet{}, networkStatus(ctx), &search.FetchError{Op: "rate limit", Err: err}
	}

	target := c.URL(q)
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithField("url", target).Debug("catalog.request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return search.ResultSet{}, metrics.StatusNetwork, &search.FetchError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return search.ResultSet{}, networkStatus(ctx), &search.FetchError{Op: "get", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return search.ResultSet{}, networkStatus(ctx), &search.FetchError{Op: "read body", Status: res.StatusCode, Err: err}
	}

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"bytes":  len(data),
		}).Debug("catalog.response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return search.ResultSet{}, metrics.StatusHTTPError, &search.FetchError{
			Op:     "get",
			Status: res.StatusCode,
			Err:    errors.New("upstream returned " + strconv.Itoa(res.StatusCode)),
		}
	}

	if err := validate(c.schema, data); err != nil {
		return search.ResultSet{}, metrics.StatusDecode, &search.FetchError{Op: "validate", Status: res.StatusCode, Err: err}
	}
	rs, err := ShapeVolumes(data)
	if err != nil {
		return search.ResultSet{}, metrics.StatusDecode, &search.FetchError{Op: "decode", Status: res.StatusCode, Err: err}
	}
	return rs, metrics.StatusOK, nil
}

func networkStatus(ctx context.Context) string {
	if ctx.Err() != nil {
		return metrics.StatusCancelled
	}
	return metrics.StatusNetwork
}
