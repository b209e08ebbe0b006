// Package client calls the TOPSIS evaluation service.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/topsis/pkg/api"
)

type Client struct {
	config      Config
	restyClient *resty.Client
	encoder     *zstd.Encoder
	decoder     *zstd.Decoder
}

// ServerError is an error reported by the service.
type ServerError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *ServerError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Message)
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = cfg.RetryWaitMax
	}
	retryClient.CheckRetry = checkRetry
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	c := &Client{
		config:      cfg,
		restyClient: restyClient,
	}

	if cfg.ZstdCompression {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			encoder.Close()
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		c.encoder = encoder
		c.decoder = decoder
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Int("retry_max", cfg.RetryMax).
		Bool("zstd", cfg.ZstdCompression).
		Msg("topsis client initialized")

	return c, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}

// checkRetry retries transport failures and overload responses. Evaluation
// errors are deterministic, so a 500 is returned as is.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusInternalServerError {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.StdResponse[api.HealthResponse]
	resp, err := c.restyClient.R().SetContext(ctx).SetResult(&out).Get(api.HealthPath)
	if err != nil {
		return api.HealthResponse{}, fmt.Errorf("get %s: %w", api.HealthPath, err)
	}
	if resp.IsError() {
		return api.HealthResponse{}, &ServerError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}
	return out.Body, nil
}

// Evaluate sends req to the service and returns the ranking.
func (c *Client) Evaluate(ctx context.Context, req api.EvaluateRequest) (*api.EvaluateResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	r := c.restyClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if c.encoder != nil {
		body = c.encoder.EncodeAll(body, nil)
		r.SetHeader("Content-Encoding", api.ContentEncodingZstd).
			SetHeader("Accept-Encoding", api.ContentEncodingZstd)
	}

	resp, err := r.SetBody(body).Post(api.EvaluatePath)
	if err != nil {
		log.Error().Err(err).Str("path", api.EvaluatePath).Msg("evaluate request failed")
		return nil, fmt.Errorf("post %s: %w", api.EvaluatePath, err)
	}

	data := resp.Body()
	if c.decoder != nil && strings.EqualFold(resp.Header().Get("Content-Encoding"), api.ContentEncodingZstd) {
		data, err = c.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: failed to decompress response: %w", err)
		}
	}

	var out api.StdResponse[api.EvaluateResponse]
	if err := sonic.Unmarshal(data, &out); err != nil {
		if resp.IsError() {
			return nil, &ServerError{StatusCode: resp.StatusCode(), Message: string(data)}
		}
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if out.Error != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode(), Kind: out.Kind, Message: *out.Error}
	}
	if resp.IsError() {
		return nil, &ServerError{StatusCode: resp.StatusCode(), Message: string(data)}
	}

	return &out.Body, nil
}
