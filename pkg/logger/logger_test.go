package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel verifica el mapeo de niveles y el default en info para
// valores desconocidos o vacíos (el nivel llega de LOG_LEVEL sin validar).
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, parseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))

	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

// TestNew verifica que el logger respeta el nivel configurado.
func TestNew(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", Service: "comercio-api"})
	require.NotNil(t, l)
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}
