package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var client = http.Client{Timeout: 12 * time.Second}

// GetBytes fetches url and returns at most limit bytes of the body.
// A limit of zero or less means no limit.
func GetBytes(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", url, limit)
	}
	return b, nil
}
