// Package gateway implements the outbound collaborators over HTTP: the
// opaque verification invocation, the dependent-applicant fetch, the
// manager-chain lookup and the atomic decision submission.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
)

const defaultTimeoutSeconds = 30

// Client talks to the verification gateway that fronts the third-party
// integrations and the organizational services.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		logger:  logger.With("module", "gateway_client"),
	}
}

// Invoke posts the payload to the named integration and returns the raw
// response body for interpretation. The body shape is integration-specific
// and opaque at this layer.
func (c *Client) Invoke(ctx context.Context, integration string, payload map[string]any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload for %s: %w", integration, err)
	}

	endpoint := c.baseURL + "/integrations/" + url.PathEscape(integration)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", integration, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification call to %s failed: %w", integration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", integration, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verification call to %s returned status %d", integration, resp.StatusCode)
	}

	return raw, nil
}

// DependentApplicant fetches the applicant data shown in the secondary
// input modal.
func (c *Client) DependentApplicant(ctx context.Context, applicantID string) (map[string]any, error) {
	var applicant map[string]any

	err := c.getJSON(ctx, "/applicants/"+url.PathEscape(applicantID)+"/dependent", &applicant)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dependent applicant %s: %w", applicantID, err)
	}

	return applicant, nil
}

// ResolveManagerChain returns the user ids on the given user's management
// chain, nearest manager first.
func (c *Client) ResolveManagerChain(ctx context.Context, userID string) ([]string, error) {
	var chain []string

	err := c.getJSON(ctx, "/org/users/"+url.PathEscape(userID)+"/manager-chain", &chain)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manager chain for %s: %w", userID, err)
	}

	return chain, nil
}

// SubmitDecision submits the full eligible id set as one atomic call.
func (c *Client) SubmitDecision(ctx context.Context, ids []string, meta models.DecisionMeta) error {
	body, err := json.Marshal(map[string]any{
		"deviation_ids": ids,
		"actor_id":      meta.ActorID,
		"remark":        meta.Remark,
		"decided_at":    meta.DecidedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize decision submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/deviations/decisions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build decision submission request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("decision submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("decision submission returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
