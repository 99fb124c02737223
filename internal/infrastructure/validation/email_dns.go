package validation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// disposableDomains are email providers that hand out throwaway inboxes.
var disposableDomains = map[string]struct{}{
	"guerrillamail.com":  {},
	"temp-mail.org":      {},
	"10minutemail.com":   {},
	"mailinator.com":     {},
	"throwaway.email":    {},
	"tempmail.com":       {},
	"getnada.com":        {},
	"maildrop.cc":        {},
	"yopmail.com":        {},
	"fakeinbox.com":      {},
	"emailondeck.com":    {},
	"throwawaymail.com":  {},
	"trashmail.com":      {},
	"sharklasers.com":    {},
	"spam4.me":           {},
	"tempr.email":        {},
}

// DNSEmailValidator checks email domains for MX records and membership in the
// disposable-provider list. Results are cached per domain for the lifetime of
// the validator since batches repeat domains heavily.
type DNSEmailValidator struct {
	client   *dns.Client
	resolver string

	mu    sync.Mutex
	cache map[string]*port.Verdict
}

// NewDNSEmailValidator creates a validator using the system resolver. The
// timeout bounds each MX query.
func NewDNSEmailValidator(timeout time.Duration) (*DNSEmailValidator, error) {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, fmt.Errorf("failed to load resolver config: %w", err)
	}
	if len(conf.Servers) == 0 {
		return nil, fmt.Errorf("no DNS servers configured")
	}
	return &DNSEmailValidator{
		client:   &dns.Client{Timeout: timeout},
		resolver: conf.Servers[0] + ":" + conf.Port,
		cache:    make(map[string]*port.Verdict),
	}, nil
}

// ValidateEmail resolves the domain's MX records. A disposable domain is
// flagged; a domain with no MX records is invalid; anything else is valid.
// Lookup failures are provider errors so the channel degrades.
func (v *DNSEmailValidator) ValidateEmail(ctx context.Context, email string) (*port.Verdict, error) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return &port.Verdict{Valid: false, Detail: "malformed address"}, nil
	}
	domain := strings.ToLower(email[at+1:])

	if _, ok := disposableDomains[domain]; ok {
		return &port.Verdict{Valid: false, Flagged: true, Detail: "disposable domain"}, nil
	}

	v.mu.Lock()
	if verdict, ok := v.cache[domain]; ok {
		v.mu.Unlock()
		return verdict, nil
	}
	v.mu.Unlock()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	resp, _, err := v.client.ExchangeContext(ctx, msg, v.resolver)
	if err != nil {
		return nil, fmt.Errorf("mx lookup for %s: %w", domain, err)
	}

	verdict := &port.Verdict{Valid: false, Detail: "no MX records"}
	if resp.Rcode == dns.RcodeSuccess {
		for _, rr := range resp.Answer {
			if _, ok := rr.(*dns.MX); ok {
				verdict = &port.Verdict{Valid: true}
				break
			}
		}
	}
	v.mu.Lock()
	v.cache[domain] = verdict
	v.mu.Unlock()
	return verdict, nil
}
