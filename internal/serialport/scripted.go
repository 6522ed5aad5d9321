// internal/serialport/scripted.go
package serialport

import (
	"bytes"
	"sync"
)

// ScriptedPort implements the driver's transport contract in memory: reads
// come from a queue the test fills, writes are captured for inspection.
// An empty queue reads as (0, nil), mimicking a serial read timeout.
type ScriptedPort struct {
	mu sync.Mutex

	readBuf  bytes.Buffer
	writeBuf bytes.Buffer

	// ReadErr is returned by the next Read call if set, then cleared.
	ReadErr error

	// WriteErr is returned by the next Write call if set, then cleared.
	WriteErr error

	ResetCalls int
	FlushCalls int
	Closed     bool
}

func NewScriptedPort() *ScriptedPort {
	return &ScriptedPort{}
}

// Queue appends bytes for subsequent Read calls.
func (s *ScriptedPort) Queue(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readBuf.Write(data)
}

// Pending reports how many queued bytes have not been read yet.
func (s *ScriptedPort) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readBuf.Len()
}

// Written returns everything written to the port so far.
func (s *ScriptedPort) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.writeBuf.Bytes()...)
}

func (s *ScriptedPort) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		err := s.ReadErr
		s.ReadErr = nil
		return 0, err
	}
	if s.readBuf.Len() == 0 {
		return 0, nil
	}
	return s.readBuf.Read(p)
}

func (s *ScriptedPort) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		err := s.WriteErr
		s.WriteErr = nil
		return 0, err
	}
	return s.writeBuf.Write(p)
}

func (s *ScriptedPort) ResetInput() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResetCalls++
	s.readBuf.Reset()
	return nil
}

func (s *ScriptedPort) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FlushCalls++
	return nil
}

func (s *ScriptedPort) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}
