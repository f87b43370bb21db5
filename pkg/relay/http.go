// Package relay delivers flow execution summaries to an external backend.
// Delivery is best-effort: the flow engine logs relay failures and never
// propagates them.
package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dshills/boardflow/pkg/errors"
	"github.com/dshills/boardflow/pkg/flow"
)

// DefaultTimeout bounds one relay attempt so a slow backend cannot stall
// the caller for long.
const DefaultTimeout = 5 * time.Second

// HTTPRelay posts execution summaries as JSON to a backend endpoint.
type HTTPRelay struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPRelay creates a relay for the given endpoint. An empty token
// omits the Authorization header.
func NewHTTPRelay(endpoint, token string) *HTTPRelay {
	return &HTTPRelay{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Relay implements flow.RelaySink. No acknowledgement beyond the HTTP
// status is awaited.
func (r *HTTPRelay) Relay(summary flow.RelaySummary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode relay summary: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.NewOperationalError("relay delivery",
			summary.FlowID.String(), summary.EventType, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewOperationalErrorWithAttrs("relay delivery",
			summary.FlowID.String(), summary.EventType,
			fmt.Errorf("backend rejected summary with status %d", resp.StatusCode),
			map[string]interface{}{"status": resp.StatusCode, "endpoint": r.endpoint})
	}
	return nil
}
