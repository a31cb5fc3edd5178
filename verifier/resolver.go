package verifier

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"
)

// MXRecord is one (priority, hostname) pair from a domain's MX record set.
type MXRecord struct {
	Priority uint16
	Host     string
}

// MXResolver resolves the ordered mail-exchanger set for a domain. Records
// are returned ascending by priority (lower = preferred).
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) ([]MXRecord, error)
}

// dnsResolver is the production MXResolver backed by the system resolver.
type dnsResolver struct {
	timeout time.Duration
}

// NewDNSResolver returns an MXResolver that queries DNS with the given
// per-lookup timeout.
func NewDNSResolver(timeout time.Duration) MXResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &dnsResolver{timeout: timeout}
}

func (r *dnsResolver) LookupMX(ctx context.Context, domain string) ([]MXRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var resolver net.Resolver
	mxs, err := resolver.LookupMX(ctx, domain)
	if err != nil {
		return nil, err
	}

	records := make([]MXRecord, 0, len(mxs))
	for _, mx := range mxs {
		records = append(records, MXRecord{
			Priority: mx.Pref,
			Host:     strings.TrimSuffix(mx.Host, "."),
		})
	}
	sortMXRecords(records)
	return records, nil
}

func sortMXRecords(records []MXRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority < records[j].Priority
	})
}

func mxHostnames(records []MXRecord) []string {
	hosts := make([]string, 0, len(records))
	for _, r := range records {
		hosts = append(hosts, r.Host)
	}
	return hosts
}
