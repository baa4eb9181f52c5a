package mes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// TokenSource supplies the bearer token and is told when the backend
// rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// Client provides access to the MES backend used by the shop-floor client.
type Client interface {
	LoginMobile(ctx context.Context, username, encryptedPassword string) (string, error)
	GetInfo(ctx context.Context) (*domain.UserInfo, error)
	Logout(ctx context.Context) error

	CraftsByBigType(ctx context.Context, bigType string) ([]domain.Option, error)
	CraftsByPline(ctx context.Context, plineCode string) ([]domain.Option, error)
	CraftList(ctx context.Context) ([]domain.Option, error)
	Machines(ctx context.Context, sysOrgCode string) ([]domain.Option, error)
	Moulds(ctx context.Context, q MouldQuery) ([]domain.Option, error)
	PartCodes(ctx context.Context, mouldCode string) ([]domain.Option, error)
	Dicts(ctx context.Context, dictType string) ([]domain.Option, error)

	SaveOtherBackList(ctx context.Context, recs []BackRecord) error
	WorkPieceTimeFeedback(ctx context.Context, recs []BackRecord) error

	WaitAssignOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error)
	WaitAssignOrder(ctx context.Context, id string) (*domain.QiandiaoOrder, error)
	SubmitQiandiaoFeedback(ctx context.Context, rec BackRecord) error
	QianTiaoUserInfo(ctx context.Context) (*domain.QianTiaoUser, error)

	SubmitQualityReport(ctx context.Context, p QualityPayload) error
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithObserver sets the call observer.
func WithObserver(o Observer) Option {
	return func(c *httpClient) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithRedisCache enables caching of lookup endpoints.
func WithRedisCache(rdb *redis.Client) Option {
	return func(c *httpClient) {
		c.redis = rdb
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *httpClient) {
		if h != nil {
			c.http = h
		}
	}
}

// httpClient implements Client over the MES REST API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	tokens   TokenSource
	observer Observer
	limiter  *rate.Limiter
	redis    *redis.Client
}

// NewClient creates a Client. tokens may be nil for unauthenticated use.
func NewClient(cfg Config, tokens TokenSource, opts ...Option) Client {
	c := &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:   tokens,
		observer: NoopObserver{},
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the common response body. Which fields are set depends on
// the endpoint: data for most, token for login, user/roles for getInfo,
// rows/total for paged lists.
type envelope struct {
	Code        *int            `json:"code"`
	Msg         string          `json:"msg"`
	Data        json.RawMessage `json:"data"`
	Token       string          `json:"token"`
	User        json.RawMessage `json:"user"`
	Roles       []string        `json:"roles"`
	Permissions []string        `json:"permissions"`
	Rows        json.RawMessage `json:"rows"`
	Total       int             `json:"total"`
}

func (e *envelope) decodeData(out any) error {
	return decodeRaw(e.Data, out)
}

func decodeRaw(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	body   any
}

// call runs req with the configured timeout. GET requests are retried on
// connection errors and 5xx responses; writes are sent once.
func (c *httpClient) call(ctx context.Context, req request) (*envelope, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	allowed := 1
	if req.method == http.MethodGet {
		allowed += c.cfg.MaxRetries
	}

	var (
		env     *envelope
		status  int
		lastErr error
		tried   int
	)
	for tried < allowed {
		tried++
		env, status, lastErr = c.do(ctx, req)
		if lastErr == nil || !retryable(lastErr) {
			break
		}
		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	err := classify(ctx, lastErr, tried)
	c.observer.OnCallComplete(CallEvent{
		Method:    req.method,
		Endpoint:  req.path,
		Status:    status,
		Attempts:  tried,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})

	if errors.Is(err, ErrUnauthorized) && c.tokens != nil {
		_ = c.tokens.Invalidate(context.WithoutCancel(ctx))
	}
	if err != nil {
		return nil, err
	}
	return env, nil
}

func (c *httpClient) do(ctx context.Context, req request) (*envelope, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader = http.NoBody
	contentType := ""
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if err := c.addAuth(ctx, httpReq); err != nil {
		return nil, 0, err
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	status := httpResp.StatusCode
	if status == http.StatusUnauthorized {
		return nil, status, ErrUnauthorized
	}
	if status < 200 || status >= 300 {
		return nil, status, &StatusError{Status: status, Msg: backendMessage(respBody)}
	}

	var env envelope
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			return nil, status, fmt.Errorf("decoding %s response: %w", req.path, err)
		}
	}
	if env.Code != nil && *env.Code != http.StatusOK {
		msg := env.Msg
		if msg == "" {
			msg = "request failed"
		}
		return nil, status, &APIError{Code: *env.Code, Msg: msg}
	}
	return &env, status, nil
}

func (c *httpClient) addAuth(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// backendMessage extracts msg or message from an error body.
func backendMessage(body []byte) string {
	var m struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	if m.Msg != "" {
		return m.Msg
	}
	return m.Message
}

func classify(ctx context.Context, err error, tried int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case retryable(err) && tried > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	default:
		return err
	}
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= 500
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var apiErr *APIError
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API_%d", apiErr.Code)
	case errors.As(err, &statusErr):
		return fmt.Sprintf("HTTP_%d", statusErr.Status)
	default:
		return "UNKNOWN"
	}
}
