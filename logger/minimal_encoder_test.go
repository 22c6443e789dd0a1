package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encodeEntry(t *testing.T, ent zapcore.Entry, fields []zapcore.Field) string {
	t.Helper()
	enc := newMinimalEncoder()
	buf, err := enc.EncodeEntry(ent, fields)
	require.NoError(t, err)
	return buf.String()
}

func TestEncodeEntryBasic(t *testing.T) {
	out := encodeEntry(t, zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2026, 3, 14, 13, 4, 35, 0, time.UTC),
		Message: "Record created",
	}, nil)

	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "Record created")
	assert.NotContains(t, out, "INFO", "info level marker should be suppressed")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestEncodeEntryWarnAndErrorLevels(t *testing.T) {
	warn := encodeEntry(t, zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "slow client"}, nil)
	assert.Contains(t, warn, "WARN")

	errOut := encodeEntry(t, zapcore.Entry{Level: zapcore.ErrorLevel, Time: time.Now(), Message: "save failed"}, nil)
	assert.Contains(t, errOut, "ERROR")
}

func TestEncodeEntryExtractsRecordFields(t *testing.T) {
	out := encodeEntry(t, zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Now(),
		Message: "Record created",
	}, []zapcore.Field{
		zap.String("record_id", "a9f0e61a22334455"),
		zap.Int("length", 7),
		zap.Int("word_count", 1),
	})

	assert.Contains(t, out, "a9f0e61a", "fingerprint should be truncated to 8 chars")
	assert.NotContains(t, out, "a9f0e61a2233", "full fingerprint should not appear")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "1 word")
}

func TestEncodeEntryComponentAbbreviation(t *testing.T) {
	out := encodeEntry(t, zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		Message:    "Loaded collection",
		LoggerName: "store.file",
	}, nil)

	assert.Contains(t, out, "s.file")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "server", abbreviateName("server"))
	assert.Equal(t, "s.file", abbreviateName("store.file"))
	assert.Equal(t, "s.file.watcher", abbreviateName("store.file.watcher"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "a9f0e61a", shortID("a9f0e61a22334455"))
	assert.Equal(t, "abc", shortID("abc"))
}
