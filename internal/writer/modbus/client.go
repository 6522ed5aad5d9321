// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"time"

	gomodbus "github.com/goburrow/modbus"
)

// Client writes holding registers on one Modbus TCP endpoint.
// This adapter is geometry-only: addresses and values in, bytes out.
type Client struct {
	handler *gomodbus.TCPClientHandler
	cli     gomodbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// New creates a connected Modbus TCP client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	handler := gomodbus.NewTCPClientHandler(cfg.Endpoint)
	handler.Timeout = cfg.Timeout
	handler.SlaveId = cfg.UnitID

	if err := handler.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: handler,
		cli:     gomodbus.NewClient(handler),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// WriteRegister writes one holding register.
func (c *Client) WriteRegister(addr, value uint16) error {
	_, err := c.cli.WriteSingleRegister(addr, value)
	return err
}

// WriteRegisters writes a contiguous block of holding registers.
func (c *Client) WriteRegisters(addr uint16, regs []uint16) error {
	buf := make([]byte, len(regs)*2)
	for i, r := range regs {
		buf[2*i] = byte(r >> 8)
		buf[2*i+1] = byte(r)
	}
	_, err := c.cli.WriteMultipleRegisters(addr, uint16(len(regs)), buf)
	return err
}
