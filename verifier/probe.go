package verifier

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SMTP command templates. The probe issues exactly these four commands and
// never DATA, so no message is ever queued or delivered.
const (
	cmdHelo     = "HELO %s"
	cmdMailFrom = "MAIL FROM:<%s>"
	cmdRcptTo   = "RCPT TO:<%s>"
	cmdQuit     = "QUIT"
)

const defaultSMTPPort = "25"

// defaultProbeTimeout is the single wall-clock bound covering the whole
// dialogue, from connection attempt to final classification.
const defaultProbeTimeout = 15 * time.Second

// Some servers answer RCPT TO with a nominal 250 whose text still rejects the
// recipient. A reply carrying any of these phrases is treated as a rejection.
// Fixed English phrases only; known to be locale- and vendor-fragile.
var rejectionPhrases = []string{
	"user unknown",
	"does not exist",
	"no such user",
	"invalid recipient",
	"recipient rejected",
}

// Prober conducts one non-delivering SMTP dialogue against one address.
type Prober interface {
	Probe(mxHost, address string) ProbeOutcome
}

// SMTPProber drives a plaintext SMTP dialogue over a raw TCP connection on
// the standard mail port. No STARTTLS, no AUTH.
type SMTPProber struct {
	// HelloName is the hostname announced in the HELO command.
	HelloName string
	// FromEmail is the sender address announced in MAIL FROM.
	FromEmail string
	// Timeout bounds the entire dialogue. Defaults to 15s.
	Timeout time.Duration
	// Port defaults to 25.
	Port string
	// Dial can be overridden for testing; defaults to net.DialTimeout.
	Dial func(network, addr string, timeout time.Duration) (net.Conn, error)

	Logger *logrus.Logger
}

// NewSMTPProber returns a prober with the default timeout and port.
func NewSMTPProber(helloName, fromEmail string) *SMTPProber {
	return &SMTPProber{
		HelloName: helloName,
		FromEmail: fromEmail,
		Timeout:   defaultProbeTimeout,
		Port:      defaultSMTPPort,
	}
}

// Probe opens a transport connection to the mail exchanger and runs the
// dialogue. All failure modes are folded into the ProbeOutcome vocabulary;
// the probe never retries within itself.
func (p *SMTPProber) Probe(mxHost, address string) ProbeOutcome {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	port := p.Port
	if port == "" {
		port = defaultSMTPPort
	}
	dial := p.Dial
	if dial == nil {
		dial = net.DialTimeout
	}

	deadline := time.Now().Add(timeout)
	addr := net.JoinHostPort(mxHost, port)

	conn, err := dial("tcp", addr, timeout)
	if err != nil {
		if p.Logger != nil {
			p.Logger.WithFields(logrus.Fields{"mx": mxHost, "email": address}).
				Debugf("dial failed: %v", err)
		}
		return transportOutcome(err)
	}
	defer conn.Close()

	// One deadline for the rest of the dialogue; an idle peer trips the
	// same timeout path as a slow connect.
	conn.SetDeadline(deadline)

	outcome := p.dialogue(conn, address)
	if p.Logger != nil {
		p.Logger.WithFields(logrus.Fields{
			"mx":        mxHost,
			"email":     address,
			"connected": outcome.Connected,
			"accepted":  outcome.Accepted,
			"code":      outcome.Code,
		}).Debug(outcome.Reason)
	}
	return outcome
}

// dialogue runs the four-command exchange over an established transport.
// Split from Probe so the state machine can be exercised with canned reply
// sequences, without a real socket.
func (p *SMTPProber) dialogue(conn io.ReadWriter, address string) ProbeOutcome {
	r := bufio.NewReader(conn)

	// Server greeting precedes any command.
	code, _, err := readReply(r)
	if err != nil {
		return transportOutcome(err)
	}
	if !dialogueContinues(code) {
		return refusedOutcome("greeting", code)
	}

	steps := []string{
		fmt.Sprintf(cmdHelo, p.HelloName),
		fmt.Sprintf(cmdMailFrom, p.FromEmail),
	}
	for _, cmd := range steps {
		if err := writeLine(conn, cmd); err != nil {
			return transportOutcome(err)
		}
		code, _, err = readReply(r)
		if err != nil {
			return transportOutcome(err)
		}
		if !dialogueContinues(code) {
			return refusedOutcome(strings.SplitN(cmd, " ", 2)[0], code)
		}
	}

	if err := writeLine(conn, fmt.Sprintf(cmdRcptTo, address)); err != nil {
		return transportOutcome(err)
	}
	code, text, err := readReply(r)
	if err != nil {
		return transportOutcome(err)
	}

	// The RCPT reply is decisive; quit regardless of outcome.
	_ = writeLine(conn, cmdQuit)

	accepted, reason := classifyRcpt(code, text)
	return ProbeOutcome{
		Connected: true,
		Accepted:  accepted,
		Reason:    reason,
		Code:      code,
	}
}

// classifyRcpt maps the final RCPT TO reply onto the acceptance decision.
func classifyRcpt(code int, text string) (accepted bool, reason string) {
	lower := strings.ToLower(text)
	switch {
	case code == 250:
		for _, phrase := range rejectionPhrases {
			if strings.Contains(lower, phrase) {
				return false, "User does not exist"
			}
		}
		return true, "Email accepted"
	case code == 550 || code == 551 || code == 553 || code == 554:
		return false, "User does not exist"
	case code == 450 || code == 451 || code == 452:
		return false, "Temporary error - greylisting"
	case code >= 400 && code < 600:
		return false, "Email rejected"
	default:
		return false, "Unknown response"
	}
}

// dialogueContinues reports whether a pre-RCPT reply lets the dialogue
// proceed. A 4xx/5xx before RCPT means the remote refused the dialogue
// itself, not the recipient.
func dialogueContinues(code int) bool {
	return code >= 200 && code < 400
}

func refusedOutcome(stage string, code int) ProbeOutcome {
	return ProbeOutcome{
		Connected: false,
		Reason:    fmt.Sprintf("Server refused %s", stage),
		Code:      code,
	}
}

func transportOutcome(err error) ProbeOutcome {
	if isTimeout(err) {
		return ProbeOutcome{Connected: false, Reason: "Connection timeout"}
	}
	return ProbeOutcome{Connected: false, Reason: "Connection error"}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// readReply reads one full SMTP reply, following "250-" continuation lines
// until the final "250 " line, and returns the reply code with the
// accumulated text.
func readReply(r *bufio.Reader) (code int, text string, err error) {
	var parts []string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 3 {
			return 0, line, nil
		}
		c, convErr := strconv.Atoi(line[:3])
		if convErr != nil {
			return 0, line, nil
		}
		code = c
		rest := line[3:]
		more := strings.HasPrefix(rest, "-")
		parts = append(parts, strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(rest, "-"), " ")))
		if !more {
			return code, strings.Join(parts, " "), nil
		}
	}
}

func writeLine(w io.Writer, line string) error {
	_, err := w.Write([]byte(line + "\r\n"))
	return err
}
