// internal/writer/tcp.go
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/tamzrod/range-replicator/internal/driver"
)

// tcpTarget pushes one JSON line per sample to a TCP ingest endpoint.
// Stateless: 1 sample = 1 connection, so a dead collector never wedges the
// pipeline and recovery needs no reconnect logic.
type tcpTarget struct {
	endpoint string
	timeout  time.Duration
}

// tcpSample is the ingest wire shape.
type tcpSample struct {
	At       time.Time `json:"at"`
	Meters   *float64  `json:"meters"` // null when no target
	NoTarget bool      `json:"no_target,omitempty"`
}

func newTCPTarget(endpoint string, timeout time.Duration) (*tcpTarget, error) {
	if endpoint == "" {
		return nil, errors.New("tcp target: endpoint required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &tcpTarget{endpoint: endpoint, timeout: timeout}, nil
}

func (t *tcpTarget) Name() string { return "tcp:" + t.endpoint }

func (t *tcpTarget) Publish(s driver.Sample) error {
	body := tcpSample{At: s.At, NoTarget: s.NoTarget}
	if !s.NoTarget {
		m := s.Meters
		body.Meters = &m
	}

	line, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("tcp target: encode: %w", err)
	}
	line = append(line, '\n')

	conn, err := net.DialTimeout("tcp", t.endpoint, t.timeout)
	if err != nil {
		return fmt.Errorf("tcp target: dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(t.timeout))
	for len(line) > 0 {
		n, err := conn.Write(line)
		if err != nil {
			return fmt.Errorf("tcp target: write: %w", err)
		}
		line = line[n:]
	}
	return nil
}

func (t *tcpTarget) Close() error { return nil }
