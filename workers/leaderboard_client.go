// workers/leaderboard_client.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"ecometer/models"
	"ecometer/utils"
)

// remoteEntry matches one row of the leaderboard service response.
type remoteEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type leaderboardResponse struct {
	Leaderboard []remoteEntry `json:"leaderboard"`
}

// LeaderboardClient pulls pre-aggregated leaderboard entries from an
// external service. It satisfies services.LeaderboardSource.
type LeaderboardClient struct {
	baseURL      string
	serviceToken string
	limit        int
	httpClient   *http.Client
}

func NewLeaderboardClient(baseURL, serviceToken string, limit int, httpClient *http.Client) (*LeaderboardClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid leaderboard URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = utils.NewHTTPClient(0)
	}
	return &LeaderboardClient{
		baseURL:      baseURL,
		serviceToken: serviceToken,
		limit:        limit,
		httpClient:   httpClient,
	}, nil
}

func (w *LeaderboardClient) Fetch(ctx context.Context) ([]models.LeaderboardEntry, error) {
	endpoint, err := url.Parse(w.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid leaderboard URL %q: %w", w.baseURL, err)
	}
	if w.limit > 0 {
		q := endpoint.Query()
		q.Set("limit", strconv.Itoa(w.limit))
		endpoint.RawQuery = q.Encode()
	}
	finalURL := endpoint.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if w.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+w.serviceToken)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		utils.Logger.Warn().Err(err).Str("url", finalURL).Msg("[LEADERBOARD] ❌ request failed")
		return nil, fmt.Errorf("leaderboard request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		utils.Logger.Warn().Int("status", resp.StatusCode).Str("url", finalURL).
			Str("body", string(body)).Msg("[LEADERBOARD] ❌ non-200 response")
		return nil, fmt.Errorf("leaderboard service returned %d: %s", resp.StatusCode, body)
	}

	var payload leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard response: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(payload.Leaderboard))
	for _, r := range payload.Leaderboard {
		if r.UserID == "" {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID: r.UserID,
			Name:   r.Name,
			Points: r.Points,
		})
	}
	utils.Logger.Debug().Int("entries", len(entries)).Msg("[LEADERBOARD] 📥 fetched")
	return entries, nil
}
