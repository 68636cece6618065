package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Ollama calls a local Ollama server through its native /api/generate
// endpoint. No credentials are involved; the server sits on the local
// network.
type Ollama struct {
	host    string
	model   string
	httpCli *http.Client
}

// NewOllama builds a client for one local model. The timeout bounds the
// whole generation call, not just the dial.
func NewOllama(host, model string, timeout time.Duration) *Ollama {
	return &Ollama{
		host:    host,
		model:   model,
		httpCli: &http.Client{Timeout: timeout},
	}
}

func (o *Ollama) Tag() Tag      { return TagLocal }
func (o *Ollama) Model() string { return o.model }

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Invoke performs a single non-streaming generation call.
func (o *Ollama) Invoke(ctx context.Context, prompt, system string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		System: system,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpCli.Do(req)
	if err != nil {
		return "", classifyTransportError("ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode ollama response: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		// An empty reply is as useless as no reply; fail so the fallback
		// chain can advance.
		return "", fmt.Errorf("%w: ollama returned an empty response", ErrUnavailable)
	}
	return out.Response, nil
}

// ListModels queries the Ollama tag inventory. Used by the status surface,
// not by the generation path.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build ollama tags request: %w", err)
	}

	resp, err := o.httpCli.Do(req)
	if err != nil {
		return nil, classifyTransportError("ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode ollama tags: %v", ErrUnavailable, err)
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// classifyTransportError maps raw transport failures onto the provider
// error taxonomy. Context cancellation is passed through untouched so the
// fallback chain can stop iterating.
func classifyTransportError(name string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, name, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
}
