// Package objstore uploads binary payloads (signature images, ID
// documents, dossiers) to the bucket-style object storage service and
// returns reference URLs.
package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"offmarket_estates/internal/adapters/observability"
)

// ErrBucketMissing marks an upload against a bucket the storage service
// does not know. Put degrades to a placeholder URL in that case instead
// of failing the caller's flow.
var ErrBucketMissing = errors.New("objstore: bucket missing")

const placeholderPrefix = "placeholder://"

type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Put uploads data as {base}/{bucket}/{name} and returns the object URL.
// A missing bucket yields a deterministic placeholder URL and no error;
// transient failures get a single retry.
func (c *Client) Put(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", c.base, bucket, name)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", contentType)

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}
		observability.ObserveExternal("objstore", "put", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return url, nil

		case http.StatusNotFound:
			// bucket not provisioned; degrade, don't block the flow
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			placeholder := placeholderPrefix + bucket + "/" + name
			log.Warn().Str("bucket", bucket).Str("object", name).
				Err(ErrBucketMissing).Msg("upload degraded to placeholder URL")
			return placeholder, nil

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			lastErr = fmt.Errorf("objstore put %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
			if resp.StatusCode < 500 {
				return "", lastErr
			}
		}
	}
	return "", lastErr
}

// IsPlaceholder reports whether url came from a degraded upload.
func IsPlaceholder(url string) bool { return strings.HasPrefix(url, placeholderPrefix) }
