package openai

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrNoChoices = errors.New("no choices returned")

const completionsPath = "/chat/completions"

// Client uses the official SDK against an OpenAI-compatible server.
type Client struct {
	client openai.Client
}

type Option func(*[]option.RequestOption)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(opts *[]option.RequestOption) {
		if hc != nil {
			*opts = append(*opts, option.WithHTTPClient(hc))
		}
	}
}

// WithTimeout bounds each request; zero leaves it unbounded.
func WithTimeout(d time.Duration) Option {
	return func(opts *[]option.RequestOption) {
		if d > 0 {
			*opts = append(*opts, option.WithRequestTimeout(d))
		}
	}
}

// New takes the full completions endpoint. The SDK is given the derived base
// URL, and every request is then pinned to the endpoint itself, so endpoints
// without a /chat/completions suffix are posted to as configured.
func New(apiKey, endpoint string, opts ...Option) *Client {
	ro := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(BaseURL(endpoint)),
		option.WithMaxRetries(0),
	}
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		ro = append(ro, pinEndpoint(u))
	}
	for _, o := range opts {
		o(&ro)
	}
	return &Client{client: openai.NewClient(ro...)}
}

// pinEndpoint sends every request to u, whatever path the SDK built.
func pinEndpoint(u *url.URL) option.RequestOption {
	return option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		target := *u
		req.URL = &target
		req.Host = target.Host
		return next(req)
	})
}

// BaseURL derives the SDK base URL from a completions endpoint.
func BaseURL(endpoint string) string {
	b := strings.TrimRight(endpoint, "/")
	b = strings.TrimSuffix(b, completionsPath)
	return b + "/"
}

func (c *Client) Complete(ctx context.Context, req ports.ChatRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
