package permission

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Checker answers whether the caller behind a bearer token holds at least
// one of the given permissions within a jurisdiction. Implementations must
// fail closed: any doubt means false.
type Checker interface {
	HasAny(ctx context.Context, token string, jurisdictionID string, perms []string) bool
}

// AuthServiceChecker delegates permission checks to the external
// authorization service over HTTP. Token parsing, user-jurisdiction
// membership, and permission storage all live on the remote side.
type AuthServiceChecker struct {
	endpoint   string
	httpClient *http.Client
}

// NewChecker builds a Checker from the AUTH_SERVICE_URL env var. When the
// variable is unset every check denies, which keeps a misconfigured
// deployment read-only rather than wide open.
func NewChecker() Checker {
	endpoint := strings.TrimRight(os.Getenv("AUTH_SERVICE_URL"), "/")
	if endpoint == "" {
		log.Println("AUTH_SERVICE_URL not set; all permission checks will be denied")
		return DenyAll{}
	}
	return &AuthServiceChecker{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type hasPermissionRequest struct {
	JurisdictionID string   `json:"jurisdiction_id"`
	Permissions    []string `json:"permissions"`
}

type hasPermissionResponse struct {
	HasPermission bool `json:"has_permission"`
}

// HasAny asks the authorization service whether the token grants any of the
// listed permissions in the jurisdiction. Network failures, non-200
// statuses, and malformed responses are all treated as "not permitted";
// a broken auth service must never widen access.
func (c *AuthServiceChecker) HasAny(ctx context.Context, token string, jurisdictionID string, perms []string) bool {
	if token == "" || len(perms) == 0 {
		return false
	}

	body, err := json.Marshal(hasPermissionRequest{
		JurisdictionID: jurisdictionID,
		Permissions:    perms,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/has-permission", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("permission check failed for jurisdiction %s: %v", jurisdictionID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var out hasPermissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false
	}
	return out.HasPermission
}

// DenyAll is the zero-trust fallback checker.
type DenyAll struct{}

func (DenyAll) HasAny(ctx context.Context, token string, jurisdictionID string, perms []string) bool {
	return false
}
