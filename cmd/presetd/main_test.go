package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "presetd.yaml"), []byte(body), 0o644))
	return dir
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := writeConfig(t, "storage:\n  driver: mongo\n")

	err := run(context.Background(), dir, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_StopsOnCancel(t *testing.T) {
	dir := writeConfig(t, "listenAddr: \"127.0.0.1:0\"\nstorage:\n  driver: sqlite\n  sqlite:\n    path: "+
		filepath.ToSlash(filepath.Join(t.TempDir(), "presets.db"))+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var logs bytes.Buffer
	go func() { done <- run(ctx, dir, &logs) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
