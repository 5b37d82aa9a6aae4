package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hbsmoke/internal/config"
	"hbsmoke/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "storage")
	return cfg
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := testConfig(t)
	st := NewJSONStorage(cfg)

	s := domain.NewSession()
	s.Record(domain.CheckResult{Name: "App Accessibility", Passed: true, Elapsed: 12 * time.Millisecond})
	s.Record(domain.CheckResult{Name: "Static Assets", Error: "GET http://localhost:5173/vite.svg: connection refused"})
	report := domain.NewSessionReport("http://localhost:5173", s, time.Second, time.Now())

	require.NoError(t, st.Save(report))
	_, err := os.Stat(cfg.GetOutputPath())
	require.NoError(t, err)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, report.Meta, loaded.Meta)
	require.Len(t, loaded.Checks, 2)
	assert.Equal(t, 12*time.Millisecond, loaded.Checks[0].Elapsed)
	assert.Equal(t, report.Checks[1].Error, loaded.Checks[1].Error)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	_, err := NewJSONStorage(testConfig(t)).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReport))
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Output.Dir, 0755))
	require.NoError(t, os.WriteFile(cfg.GetOutputPath(), []byte("{not json"), 0644))

	_, err := NewJSONStorage(cfg).Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoReport))
}
