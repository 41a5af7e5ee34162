// README: StableHorde client: async submit, cheap check polling, full status fetch.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://stablehorde.net/api"
	AnonymousAPIKey    = "0000000000"
	DefaultClientAgent = "wanderlust:1.0:unknown"
)

var ErrMissingJobID = errors.New("stablehorde: response has no job id")

// CheckStatus is the lightweight progress report of a queued job.
type CheckStatus struct {
	Done       bool `json:"done"`
	Faulted    bool `json:"faulted"`
	Waiting    int  `json:"waiting"`
	Processing int  `json:"processing"`
	Finished   int  `json:"finished"`
	WaitTime   int  `json:"wait_time"`
}

type Params struct {
	CFGScale          float64 `json:"cfg_scale"`
	DenoisingStrength float64 `json:"denoising_strength"`
	Seed              string  `json:"seed"`
	Height            int     `json:"height"`
	Width             int     `json:"width"`
	SeedVariation     int     `json:"seed_variation"`
	Steps             int     `json:"steps"`
}

type submitRequest struct {
	Prompt string `json:"prompt"`
	Params Params `json:"params"`
}

type statusResponse struct {
	Done        bool `json:"done"`
	Finished    int  `json:"finished"`
	Generations []struct {
		Img string `json:"img"`
	} `json:"generations"`
}

type Client struct {
	baseURL     string
	apiKey      string
	clientAgent string
	httpClient  *http.Client
}

func NewClient(baseURL, apiKey, clientAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = AnonymousAPIKey
	}
	if clientAgent == "" {
		clientAgent = DefaultClientAgent
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		clientAgent: clientAgent,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Prompt is the text sent for a country's landscape image.
func Prompt(country string) string {
	return "A realistic image representing " + country
}

// DefaultParams returns the generation parameters with a fresh random seed.
func DefaultParams() Params {
	return Params{
		CFGScale:          7.5,
		DenoisingStrength: 0.75,
		Seed:              strconv.Itoa(rand.IntN(1000000)),
		Height:            512,
		Width:             512,
		SeedVariation:     1,
		Steps:             10,
	}
}

// Submit queues a generation and returns the job identifier.
func (c *Client) Submit(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(submitRequest{Prompt: prompt, Params: DefaultParams()})
	if err != nil {
		return "", fmt.Errorf("stablehorde: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/generate/async", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("stablehorde: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("stablehorde: submit: %w", err)
	}
	if out.ID == "" {
		return "", ErrMissingJobID
	}
	return out.ID, nil
}

// Check reports queue progress without fetching images.
func (c *Client) Check(ctx context.Context, jobID string) (CheckStatus, error) {
	var st CheckStatus
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/generate/check/"+jobID, nil)
	if err != nil {
		return st, fmt.Errorf("stablehorde: build request: %w", err)
	}
	if err := c.do(req, &st); err != nil {
		return st, fmt.Errorf("stablehorde: check %s: %w", jobID, err)
	}
	return st, nil
}

// Result returns the first generated image URL, or "" while nothing has finished.
func (c *Client) Result(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/generate/status/"+jobID, nil)
	if err != nil {
		return "", fmt.Errorf("stablehorde: build request: %w", err)
	}
	var st statusResponse
	if err := c.do(req, &st); err != nil {
		return "", fmt.Errorf("stablehorde: status %s: %w", jobID, err)
	}
	if st.Done && st.Finished > 0 && len(st.Generations) > 0 {
		return st.Generations[0].Img, nil
	}
	return "", nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Client-Agent", c.clientAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
