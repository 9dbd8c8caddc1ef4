package spreadsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"warranty-service/internal/domain"
)

// Mirror posts created claims to a spreadsheet ingestion webhook
// (a Google Apps Script web app in production).
type Mirror struct {
	url        string
	httpClient *http.Client
}

func NewMirror(url string, timeout time.Duration) *Mirror {
	return &Mirror{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (m *Mirror) Name() string {
	return "spreadsheet"
}

func (m *Mirror) Notify(ctx context.Context, claim *domain.WarrantyClaim) error {
	body, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("spreadsheet returned status %d: %s", resp.StatusCode, bytes.TrimSpace(text))
	}

	log.Printf("spreadsheet: claim %s mirrored", claim.ID)
	return nil
}
