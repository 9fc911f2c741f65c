package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "notes.db"))
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"seed"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Seeded 3 sample notes.")

	out.Reset()
	rootCmd.SetArgs([]string{"seed"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Notes already exist. No seeding performed.")
}

func TestSeedCommandRejectsArgs(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_DIR", filepath.Join(t.TempDir(), "logs"))
	rootCmd.SetArgs([]string{"seed", "extra"})
	assert.Error(t, rootCmd.Execute())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
