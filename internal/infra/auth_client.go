package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shop-service/internal/apperr"
)

type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify", nil)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "auth request failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "auth service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return 0, apperr.New(apperr.Unauthorized, "Invalid token")
	}

	if resp.StatusCode != http.StatusOK {
		return 0, apperr.Wrap(apperr.Internal, "auth verification failed",
			fmt.Errorf("auth service returned status %d", resp.StatusCode))
	}

	var body struct {
		UserID uint64 `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, apperr.Wrap(apperr.Internal, "auth verification failed", err)
	}

	return body.UserID, nil
}
