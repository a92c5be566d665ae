package storage

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// HttpUploader PUTs proofs to a remote object store endpoint.
type HttpUploader struct {
	endpoint string
	client   http.Client
}

func NewHttpUploader(endpoint string, timeout time.Duration) (*HttpUploader, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}

	client, err := createCustomHttpClient(timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	return &HttpUploader{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   client,
	}, nil
}

func createCustomHttpClient(timeout time.Duration) (http.Client, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return http.Client{}, err
	}

	return http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}

func (u *HttpUploader) Upload(ctx context.Context, name string, content []byte) (string, error) {
	url := u.endpoint + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload proof: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload rejected with status %d", resp.StatusCode)
	}

	zap.L().Info("Proof uploaded", zap.String("url", url))
	return url, nil
}
