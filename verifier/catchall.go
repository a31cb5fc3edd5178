package verifier

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SkipPolicy decides, per provider category, whether the catch-all
// discriminator should be skipped. Heuristic policy, not a protocol
// requirement; replaceable per deployment without touching the probe.
type SkipPolicy func(Provider) bool

// DefaultSkipPolicy skips synthetic probing for providers whose
// infrastructure makes it unreliable or policy-violating.
func DefaultSkipPolicy(p Provider) bool {
	switch p {
	case ProviderGoogleWorkspace, ProviderMicrosoft365, ProviderCorporate:
		return true
	default:
		return false
	}
}

// defaultProbeGap paces sequential synthetic probes so they don't trip the
// remote's rate defenses.
const defaultProbeGap = 1 * time.Second

// checkCatchAll probes two syntactically valid but random addresses at the
// domain. Only when both are accepted is the domain classified catch-all;
// per-address acceptance then carries no information.
func (v *Verifier) checkCatchAll(mxHost, domain string) bool {
	gap := v.ProbeGap
	if gap <= 0 {
		gap = defaultProbeGap
	}
	pause := v.sleep
	if pause == nil {
		pause = time.Sleep
	}

	accepted := 0
	for i := 0; i < 2; i++ {
		if i > 0 {
			pause(gap)
		}
		outcome := v.Prober.Probe(mxHost, fmt.Sprintf("%s@%s", randomLocalPart(), domain))
		if outcome.Connected && outcome.Accepted {
			accepted++
		}
	}
	return accepted == 2
}

// randomLocalPart returns a 128-bit random hex local part. Collision with a
// real mailbox is not a practical concern at this size.
func randomLocalPart() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; fall back to a time-derived token.
		return fmt.Sprintf("probe%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
