package students

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/studentmanager/api"
	"github.com/bigredeye/studentmanager/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:5000/api/students"
	DefaultTimeout = time.Second * 10
)

// RequestError is returned for transport failures and non-2xx responses.
// StatusCode is zero when no response was received.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

type options struct {
	timeout    time.Duration
	retryCount int
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*options)

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithRetryCount enables transport-level retries. Disabled by default.
func WithRetryCount(count int) Option {
	return func(o *options) {
		o.retryCount = count
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type Client struct {
	client  *resty.Client
	baseURL string
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid backend url")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("Invalid backend url %q", baseURL)
	}

	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	if o.httpClient != nil {
		client = resty.NewWithClient(o.httpClient)
	}
	client.
		SetBaseURL(baseURL).
		SetTimeout(o.timeout).
		SetRetryCount(o.retryCount).
		SetHeader("Accept", "application/json")

	if o.logger != nil {
		client.SetLogger(o.logger.Named("resty").Sugar())
	}

	return &Client{client, baseURL}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) ([]models.Student, error) {
	var res []models.Student
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&res).
		SetError(&api.ErrorResponse{}).
		Get("")
	if err := checkResponse("list students", resp, err); err != nil {
		return nil, err
	}

	if res == nil {
		res = []models.Student{}
	}
	return res, nil
}

func (c *Client) Create(ctx context.Context, req *api.StudentRequest) (*models.Student, error) {
	res := &models.Student{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(res).
		SetError(&api.ErrorResponse{}).
		Post("")
	if err := checkResponse("create student", resp, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Update(ctx context.Context, id models.StudentID, req *api.StudentRequest) (*models.Student, error) {
	res := &models.Student{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		SetBody(req).
		SetResult(res).
		SetError(&api.ErrorResponse{}).
		Put("/{id}")
	if err := checkResponse("update student", resp, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Delete(ctx context.Context, id models.StudentID) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		SetResult(&api.AckResponse{}).
		SetError(&api.ErrorResponse{}).
		Delete("/{id}")
	return checkResponse("delete student", resp, err)
}

// WaitReady polls the list endpoint until the backend answers with any
// HTTP status, or maxElapsed passes.
func (c *Client) WaitReady(ctx context.Context, maxElapsed time.Duration, notify backoff.Notify) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	op := func() error {
		_, err := c.List(ctx)
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
			return nil
		}
		return err
	}

	return errors.Wrap(backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify), "Backend is not reachable")
}

func checkResponse(op string, resp *resty.Response, err error) error {
	if resp == nil || resp.RawResponse == nil {
		if err == nil {
			err = errors.New("no response")
		}
		return &RequestError{Op: op, Err: err}
	}

	if resp.IsSuccess() && err == nil {
		return nil
	}

	reqErr := &RequestError{Op: op, StatusCode: resp.StatusCode(), Err: err}
	if body, ok := resp.Error().(*api.ErrorResponse); ok && body != nil {
		reqErr.Message = body.Message
	}
	return reqErr
}
