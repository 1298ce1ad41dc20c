package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"infinium/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds := Default()

	assert.Equal(t, "Alex Johnson", ds.User.Name)
	assert.Equal(t, 2000, ds.User.CalorieGoal)
	assert.Len(t, ds.Family, 4)
	assert.Len(t, ds.Alerts, 4)
	assert.Len(t, ds.Inventory, 8)
	assert.Len(t, ds.Recipes, 4)
	assert.Len(t, ds.Shopping, 5)

	assert.Equal(t, "1", ds.Family[0].ID)
	require.NotNil(t, ds.Family[3].CalorieGoal)
	assert.Equal(t, 1200, *ds.Family[3].CalorieGoal)
	assert.Equal(t, []string{model.NoneTag}, ds.Family[3].Allergies)
	assert.Equal(t, "2024-01-15", ds.Alerts[0].ExpirationDate)
	assert.Equal(t, "Chicken Breast", ds.Inventory[2].Name)
	assert.Equal(t, 75, ds.Inventory[2].FreshnessScore)
	assert.Equal(t, "Spinach & Tomato Scramble", ds.Recipes[0].Name)
	assert.Equal(t, model.LevelLow, ds.Shopping[3].Priority)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "empty document", data: ""},
		{name: "minimal", data: "user:\n  id: u1\n  name: Jo\n"},
		{name: "unknown key", data: "users: []\n", wantErr: true},
		{name: "malformed", data: "alerts: [", wantErr: true},
		{name: "missing member id", data: "family:\n  - name: Jo\n", wantErr: true},
		{name: "duplicate member id", data: "family:\n  - {id: \"1\", name: A}\n  - {id: \"1\", name: B}\n", wantErr: true},
		{name: "freshness out of range", data: "inventory:\n  - {id: 1, name: Milk, freshnessScore: 101}\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", ds.User.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user:\n  id: u2\n  name: Sam\n"), 0o644))
	ds, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sam", ds.User.Name)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user:\n  id: u1\n  name: First\n"), 0o644))

	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan model.Dataset, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(ds model.Dataset) { reloaded <- ds })
	}()

	// unrelated files and invalid versions are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("bogus: ["), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("user:\n  id: u1\n  name: Second\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ds := <-reloaded:
			if ds.User.Name == "Second" {
				cancel()
				assert.ErrorIs(t, <-done, context.Canceled)
				return
			}
		case <-deadline:
			t.Fatal("seed change not observed")
		}
	}
}
