package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"moncomptepro/internal/evidence/registry/providers"
)

// ErrAmbiguous is returned when several directory entries match.
var ErrAmbiguous = errors.New("directory returned several matching entries")

// newHTTPClient returns a client honouring upstream cache headers.
func newHTTPClient(timeout time.Duration) *http.Client {
	client := httpcache.NewTransport(httpcache.NewMemoryCache()).Client()
	client.Timeout = timeout
	return client
}

// getJSON decodes a 200 response into out. found is false on 404.
func getJSON(ctx context.Context, client *http.Client, providerID, url string, out any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, providers.NewProviderError(providers.ErrorInternal, providerID, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, providers.FromTransport(providerID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, providers.FromStatus(providerID, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, providers.NewProviderError(providers.ErrorContractMismatch, providerID, "decode response", err)
	}
	return true, nil
}

func wrap(providerID string, err error) error {
	return fmt.Errorf("%s lookup: %w", providerID, err)
}
