package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})

	Log(Fields{Service: "checkout", Invoice: "INV-1", Status: "success", Lines: 2})

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	assert.Equal(t, "checkout", got["service"])
	assert.Equal(t, "INV-1", got["invoice"])
	assert.Equal(t, float64(2), got["lines"])
	assert.NotEmpty(t, got["timestamp"])
	assert.NotContains(t, got, "error")
}
