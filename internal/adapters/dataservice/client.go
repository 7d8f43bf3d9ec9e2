// Package dataservice reads deforestation figures from a remote floresta-api
package dataservice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	perr "observafloresta/internal/platform/errors"
	"observafloresta/internal/platform/logger"
)

const (
	basePathDefault  = "/api/v1/deforestation"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "floresta-dataservice"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// Options configures the Client
type Options struct {
	// BaseURL is the api origin, e.g. http://localhost:4000
	BaseURL   string
	BasePath  string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors and transient statuses
	MaxRetries int
	RetryBase  time.Duration

	// Rate is requests per second sent upstream, zero disables the throttle
	Rate  float64
	Burst int

	// CacheTTL zero keeps the default, negative disables caching
	CacheSize int
	CacheTTL  time.Duration
}

// Client talks to the deforestation endpoints and unwraps the response envelope
type Client struct {
	http  *http.Client
	opts  Options
	lim   *rate.Limiter
	cache *expirable.LRU[string, []byte]
	log   logger.Logger
	sleep func(context.Context, time.Duration) error
}

// envelope mirrors the api response wrapper
type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

// New creates a Client, BaseURL is required
func New(o Options) (*Client, error) {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		return nil, perr.InvalidArgf("dataservice: empty base url")
	}
	if o.BasePath == "" {
		o.BasePath = basePathDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultCacheSize
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = defaultCacheTTL
	}

	c := &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("dataservice"),
		sleep: sleepCtx,
	}
	if o.Rate > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		c.lim = rate.NewLimiter(rate.Limit(o.Rate), burst)
	}
	if o.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, []byte](o.CacheSize, nil, o.CacheTTL)
	}
	return c, nil
}

// Purge drops every cached response
func (c *Client) Purge() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// do sends one logical request and decodes the envelope data into out
// successful payloads are cached by method, path and body
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "dataservice: encode %s", path)
		}
		payload = b
	}

	key := method + " " + path + " " + string(payload)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			return decode(data, out, path)
		}
	}

	data, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if err := decode(data, out, path); err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Add(key, data)
	}
	return nil
}

// send retries transport errors and transient statuses with exponential backoff
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (json.RawMessage, error) {
	url := c.opts.BaseURL + c.opts.BasePath + path
	attempts := 0
	for {
		if c.lim != nil {
			if err := c.lim.Wait(ctx); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dataservice: throttle")
			}
		}

		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "dataservice: new request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil || attempts >= c.opts.MaxRetries {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dataservice: %s %s failed", method, path)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("dataservice transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dataservice: %s %s cancelled", method, path)
			}
			attempts++
			continue
		}

		raw, rerr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		_ = resp.Body.Close()

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", time.Since(start)).
			Msg("dataservice http response")

		if transient(resp.StatusCode) && attempts < c.opts.MaxRetries {
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", wait).Msg("dataservice transient status retrying")
			if err := c.sleep(ctx, wait); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dataservice: %s %s cancelled", method, path)
			}
			attempts++
			continue
		}
		if rerr != nil {
			return nil, perr.Wrapf(rerr, perr.ErrorCodeUnavailable, "dataservice: read %s", path)
		}
		return unwrap(resp.StatusCode, raw)
	}
}

// unwrap returns the envelope data or rebuilds the remote error
func unwrap(status int, raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 200 && status < 300 {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "dataservice: malformed envelope")
		}
		env = envelope{}
	}
	if status >= 200 && status < 300 {
		return env.Data, nil
	}

	code := env.Code
	if code == perr.ErrorCodeUnknown {
		code = codeFromStatus(status)
	}
	msg := env.Error
	if msg == "" {
		msg = http.StatusText(status)
	}
	return nil, perr.New(code, msg)
}

func decode(data json.RawMessage, out any, path string) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "dataservice: decode %s", path)
	}
	return nil
}

// codeFromStatus inverts perr.HTTPStatusCode for envelopes without a code
func codeFromStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusUnprocessableEntity:
		return perr.ErrorCodeInvalidArgument
	case http.StatusBadRequest:
		return perr.ErrorCodeValidation
	case http.StatusConflict:
		return perr.ErrorCodeConflict
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

func transient(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func retryAfter(h http.Header) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 10*time.Second || d <= 0 {
		d = 10 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
