package serialport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedPort_ReadTimesOutWhenEmpty(t *testing.T) {
	p := NewScriptedPort()

	buf := make([]byte, 8)
	n, err := p.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestScriptedPort_QueueAndRead(t *testing.T) {
	p := NewScriptedPort()
	p.Queue([]byte{0x01, 0x02, 0x03})

	buf := make([]byte, 2)
	n, err := p.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, buf[:n])
	assert.Equal(t, 1, p.Pending())
}

func TestScriptedPort_WriteCapture(t *testing.T) {
	p := NewScriptedPort()

	n, err := p.Write([]byte{0xA5, 0x03})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0xA5, 0x03}, p.Written())
}

func TestScriptedPort_ResetInputDiscardsQueue(t *testing.T) {
	p := NewScriptedPort()
	p.Queue([]byte{0xFF, 0xFF})

	require.NoError(t, p.ResetInput())
	assert.Equal(t, 0, p.Pending())
	assert.Equal(t, 1, p.ResetCalls)
}

func TestScriptedPort_InjectedErrorsFireOnce(t *testing.T) {
	p := NewScriptedPort()
	p.ReadErr = errors.New("boom")

	_, err := p.Read(make([]byte, 1))
	require.Error(t, err)

	_, err = p.Read(make([]byte, 1))
	assert.NoError(t, err)
}
