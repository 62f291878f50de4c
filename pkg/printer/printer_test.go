package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeCommands(t *testing.T) {
	doc := NewDocument(32)
	_, err := doc.QRCode([]byte("UPNQR"), 4, QRCorrectionM)
	require.NoError(t, err)

	want := []byte{ESC, '@'}
	want = append(want, GS, '(', 'k', 4, 0, 49, 65, 50, 0)
	want = append(want, GS, '(', 'k', 3, 0, 49, 67, 4)
	want = append(want, GS, '(', 'k', 3, 0, 49, 69, 49)
	want = append(want, GS, '(', 'k', 8, 0, 49, 80, 48)
	want = append(want, []byte("UPNQR")...)
	want = append(want, GS, '(', 'k', 3, 0, 49, 81, 48)
	assert.Equal(t, want, doc.Bytes())
}

func TestQRCodeClampsModuleSize(t *testing.T) {
	doc := NewDocument(32)
	_, err := doc.QRCode([]byte("x"), 40, QRCorrectionL)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes()), string([]byte{GS, '(', 'k', 3, 0, 49, 67, 16}))
}

func TestWrapped(t *testing.T) {
	doc := NewDocument(12)
	doc.Wrapped("  ", "Payment for order 1042")

	assert.Equal(t, "\x1b@  Payment\n  for order\n  1042\n", string(doc.Bytes()))
}

func TestWrappedCountsRunes(t *testing.T) {
	doc := NewDocument(9)
	doc.Wrapped("  ", "čšž čšž đ")

	assert.Equal(t, "\x1b@  čšž čšž\n  đ\n", string(doc.Bytes()))
}

func TestWrappedBreaksLongWords(t *testing.T) {
	long := strings.Repeat("0123456789", 4)
	doc := NewDocument(32)
	doc.Wrapped("  ", "IBAN "+long)

	body := strings.TrimPrefix(string(doc.Bytes()), "\x1b@")
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	assert.Equal(t, []string{
		"  IBAN",
		"  " + long[:30],
		"  " + long[30:],
	}, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 32)
	}
}

func TestKeyValue(t *testing.T) {
	doc := NewDocument(16)
	doc.KeyValue("Amount:", "12.50")

	assert.Equal(t, "\x1b@Amount:    12.50\n", string(doc.Bytes()))
}

func TestKeyValueCountsRunes(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Rok plačila:", "05.03.2024")

	line := strings.TrimSuffix(strings.TrimPrefix(string(doc.Bytes()), "\x1b@"), "\n")
	assert.Equal(t, 32, utf8.RuneCountInString(line))
	assert.Equal(t, "Rok plačila:"+strings.Repeat(" ", 10)+"05.03.2024", line)
}

func TestNew(t *testing.T) {
	p, err := New(Config{Type: "none"})
	require.NoError(t, err)
	assert.False(t, p.IsConnected(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)
	_, err = New(Config{Type: "network"})
	assert.Error(t, err)
	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinterWritesDeviceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p, err := New(Config{Type: "usb", USBPath: path})
	require.NoError(t, err)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("slip")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "slip", string(got))
}

func TestNetworkPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, conn)
		received <- buf.Bytes()
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("slip")))

	select {
	case got := <-received:
		assert.Equal(t, "slip", string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("printer did not receive data")
	}
}
