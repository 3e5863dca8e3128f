package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxRemoteSize caps a downloaded survey document.
const maxRemoteSize = 4 << 20

func loadHTTP(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("survey loader: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("survey loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("survey loader: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("survey loader: fetch %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("survey loader: read %s: %w", url, err)
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("survey loader: %s exceeds %d bytes", url, maxRemoteSize)
	}
	return data, nil
}
