package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trainer.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
table {
  seats          = 3
  small_blind    = 25
  big_blind      = 50
  starting_chips = 5000
  hands          = 10
}

opponent "Rocky" {
  vpip       = 0.15
  aggression = 0.4
  bluff      = 0.02
}

opponent "Loosey" {
  vpip = 0.9
}

advisor {
  model = "gpt-4o"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Table.Seats)
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 5000, cfg.Table.StartingChips)
	assert.Equal(t, 10, cfg.Table.Hands)

	require.Len(t, cfg.Opponents, 2)
	assert.Equal(t, "Rocky", cfg.Opponents[0].Name)
	assert.Equal(t, 0.15, *cfg.Opponents[0].VPIP)
	assert.Equal(t, 0.9, *cfg.Opponents[1].VPIP)
	assert.Equal(t, 0.5, *cfg.Opponents[1].Aggression, "omitted profile fields take defaults")

	require.NotNil(t, cfg.Advisor)
	assert.Equal(t, "gpt-4o", cfg.Advisor.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Advisor.APIKeyEnv)
}

func TestLoadAppliesTableDefaults(t *testing.T) {
	path := writeConfig(t, `
table {
  small_blind = 10
  big_blind   = 20
}

opponent "A" {}
opponent "B" {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Table.Seats, "seats default to opponents plus the hero")
	assert.Equal(t, 1000, cfg.Table.StartingChips, "stacks default to fifty big blinds")
	assert.Equal(t, 20, cfg.Table.Hands)
	assert.Nil(t, cfg.Advisor)
}

func TestLoadKeepsExplicitZeroProfileValues(t *testing.T) {
	path := writeConfig(t, `
table {
  small_blind = 10
  big_blind   = 20
}

opponent "Nit" {
  vpip       = 0
  aggression = 0
  bluff      = 0
}

opponent "Plain" {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Opponents, 2)
	assert.Zero(t, *cfg.Opponents[0].VPIP, "an explicit zero is a never-plays profile, not an omission")
	assert.Zero(t, *cfg.Opponents[0].Aggression)
	assert.Zero(t, *cfg.Opponents[0].Bluff)
	assert.Equal(t, 0.5, *cfg.Opponents[1].VPIP)
	assert.Equal(t, 0.1, *cfg.Opponents[1].Bluff)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := writeConfig(t, `table { small_blind = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"big blind below small blind",
			`table {
  small_blind = 50
  big_blind   = 20
}`,
		},
		{
			"zero blind",
			`table {
  small_blind = 0
  big_blind   = 20
}`,
		},
		{
			"too many seats",
			`table {
  seats       = 12
  small_blind = 10
  big_blind   = 20
}`,
		},
		{
			"profile value out of range",
			`table {
  small_blind = 10
  big_blind   = 20
}
opponent "Wild" {
  vpip = 1.5
}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
