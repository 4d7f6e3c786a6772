package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureLogs redirects output to a buffer for the duration of a test.
func captureLogs(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	captureLogs(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func()
		verbose string
		quiet   string
	}{
		{
			name:    "debug",
			log:     func() { Debug("Fetched changes page %d (%d records)", 2, 1000) },
			verbose: "[DEBUG] Fetched changes page 2 (1000 records)\n",
		},
		{
			name:    "info",
			log:     func() { Info("Listed %d entities", 42) },
			verbose: "[INFO] Listed 42 entities\n",
		},
		{
			name:    "warn",
			log:     func() { Warn("Drive returned no new start cursor, keeping the stored one") },
			verbose: "[WARN] Drive returned no new start cursor, keeping the stored one\n",
		},
		{
			name:    "section",
			log:     func() { Section("Drive sync (delta) run r1") },
			verbose: "\n=== Drive sync (delta) run r1 ===\n",
		},
		{
			name:    "error",
			log:     func() { Error("sync failed: %s", "index unavailable") },
			verbose: "[ERROR] sync failed: index unavailable\n",
			quiet:   "[ERROR] sync failed: index unavailable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" verbose", func(t *testing.T) {
			buf := captureLogs(t, true)
			tt.log()
			assert.Equal(t, tt.verbose, buf.String())
		})
		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := captureLogs(t, false)
			tt.log()
			assert.Equal(t, tt.quiet, buf.String())
		})
	}
}

func TestConcurrentWorkersWriteWholeLines(t *testing.T) {
	buf := captureLogs(t, true)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				Debug("Content of file-%d-%d extracted", w, i)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		assert.Regexp(t, `^\[DEBUG\] Content of file-\d+-\d+ extracted$`, line)
	}
	assert.Contains(t, buf.String(), fmt.Sprintf("file-%d-%d", workers-1, perWorker-1))
}
