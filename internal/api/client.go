// Package api is the HTTP client for the workout-planning service. It attaches
// the session token to every request and turns non-2xx answers into
// *HTTPError values.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/misterclayt0n/lazaro-planner/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultRetryDelay = 200 * time.Millisecond

// Configurator supplies the server location and the current session token.
type Configurator interface {
	GetServerURL() string
	GetToken() string
}

type ClientOptions struct {
	InsecureSkipVerify bool          // Skips TLS certificate validation.
	RetryAttempts      uint          // Attempts for GET requests on transport failures. 0 means 1.
	RetryDelay         time.Duration // Base backoff delay between attempts.
	Timeout            time.Duration // Zero means no timeout.
}

type Client struct {
	config     Configurator
	httpClient *http.Client
	opts       ClientOptions
}

func NewClient(config Configurator, opts ...ClientOptions) *Client {
	clientOpts := ClientOptions{RetryAttempts: 1, RetryDelay: DefaultRetryDelay}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	if clientOpts.RetryAttempts == 0 {
		clientOpts.RetryAttempts = 1
	}

	httpClient := &http.Client{Timeout: clientOpts.Timeout}
	if clientOpts.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		opts:       clientOpts,
	}
}

type RequestOptions struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Body        []byte
}

// DoRequest sends the request and returns the response body. GET requests
// are retried on transport failures; HTTP error statuses are never retried.
func (c *Client) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	if opts.Method != http.MethodGet {
		return c.do(ctx, opts)
	}

	var body []byte
	err := retry.Do(func() error {
		var err error
		body, err = c.do(ctx, opts)
		return err
	},
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr *HTTPError
			return !errors.As(err, &httpErr) && ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("path", opts.Path).Msg("retrying request")
		}),
	)
	return body, err
}

func (c *Client) do(ctx context.Context, opts RequestOptions) ([]byte, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	var bodyReader io.Reader
	if opts.Body != nil {
		bodyReader = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.config.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := log.With().Str("method", opts.Method).Str("path", opts.Path).Str("request_id", requestID).Logger()
	logger.Debug().Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("received response")
	if resp.StatusCode >= 400 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}

// ListPlannedWorkouts fetches the full planned-workout collection in server order.
func (c *Client) ListPlannedWorkouts(ctx context.Context) ([]models.PlannedWorkout, error) {
	body, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   "/workouts",
	})
	if err != nil {
		return nil, err
	}

	workouts := []models.PlannedWorkout{}
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("failed to parse planned workouts: %w", err)
	}
	return workouts, nil
}

func (c *Client) DeletePlannedWorkout(ctx context.Context, id models.WorkoutID) error {
	_, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   "/workouts/delete-planned/" + url.PathEscape(id.String()),
	})
	return err
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	data, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}

	body, err := c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   data,
	})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

func (c *Client) Register(ctx context.Context, creds models.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	_, err = c.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   data,
	})
	return err
}
