package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// ipLookupResponse is the shape returned by ip-api.com style endpoints.
type ipLookupResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	Proxy       bool   `json:"proxy"`
	Hosting     bool   `json:"hosting"`
	Message     string `json:"message"`
}

// HTTPIPValidator resolves IP reputation and geolocation over an HTTP lookup
// API. Requests are rate limited to stay inside the provider's quota.
type HTTPIPValidator struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPIPValidator creates a validator against the given lookup base URL,
// allowing at most rps requests per second. Fractional rates slow requests
// below one per second.
func NewHTTPIPValidator(baseURL string, rps float64) *HTTPIPValidator {
	if rps <= 0 {
		rps = 1
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &HTTPIPValidator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// ValidateIP looks up the address. Private and loopback addresses short
// circuit locally since the provider cannot resolve them.
func (v *HTTPIPValidator) ValidateIP(ctx context.Context, ip string) (*port.Verdict, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return &port.Verdict{Valid: false, Detail: "malformed address"}, nil
	}
	if parsed.IsPrivate() || parsed.IsLoopback() {
		return &port.Verdict{Valid: true, Detail: "private address"}, nil
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/%s?fields=status,message,countryCode,proxy,hosting", v.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build ip lookup request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip lookup for %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip lookup for %s: unexpected status %d", ip, resp.StatusCode)
	}

	var body ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ip lookup response: %w", err)
	}
	if body.Status != "success" {
		return &port.Verdict{Valid: false, Detail: body.Message}, nil
	}

	verdict := &port.Verdict{
		Valid:   true,
		Country: body.CountryCode,
	}
	if body.Proxy || body.Hosting {
		verdict.Flagged = true
		verdict.Detail = "proxy or hosting exit"
	}
	return verdict, nil
}
