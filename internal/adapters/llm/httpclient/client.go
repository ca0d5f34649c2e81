package httpclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/go-resty/resty/v2"
)

var ErrNoChoices = errors.New("no choices returned")

// Client posts chat completions to a full endpoint URL. It never retries.
type Client struct {
	APIKey   string
	Endpoint string
	http     *resty.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatBody struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// New builds a client; a zero timeout leaves requests unbounded.
func New(apiKey, endpoint string, timeout time.Duration) *Client {
	c := resty.New().SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{APIKey: apiKey, Endpoint: endpoint, http: c}
}

func (c *Client) Complete(ctx context.Context, req ports.ChatRequest) (string, error) {
	body := chatBody{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	var resp chatResponse
	var apiErr errorResponse
	rr, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		SetError(&apiErr).
		Post(c.Endpoint)
	if err != nil {
		return "", err
	}
	if rr.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("chat completion: %s: %s", rr.Status(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("chat completion: %s; body: %s", rr.Status(), abbreviate(rr.String(), 500))
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
