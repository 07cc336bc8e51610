package list

import (
	"context"
	"errors"
	"testing"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/amora/amoractl/internal/iostreams"
	"github.com/amora/amoractl/internal/profile"
	testcmd "github.com/amora/amoractl/test/cmd"
	testconfig "github.com/amora/amoractl/test/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles map[string]map[string]any

func (f fakeProfiles) GetProfiles() []string {
	names := make([]string, 0, len(f))
	for _, n := range []string{"default", "prod", "staging"} {
		if _, ok := f[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func (f fakeProfiles) GetProfile(name string) (map[string]any, error) {
	p, ok := f[name]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}

var profiles = fakeProfiles{
	"default": {
		"output":  "text",
		"backend": map[string]any{"base-url": "http://localhost:3000/api"},
	},
	"prod": {
		"output":  "json",
		"backend": map[string]any{"base-url": "https://api.amora.app"},
	},
}

func TestBuildProfileRecords(t *testing.T) {
	records, err := buildProfileRecords(profiles, "prod")
	require.NoError(t, err)
	assert.Equal(t, []profileRecord{
		{Name: "default", BaseURL: "http://localhost:3000/api", Output: "text"},
		{Name: "prod", Active: true, BaseURL: "https://api.amora.app", Output: "json"},
	}, records)
}

func TestBuildProfileRecordsWithoutBackendSection(t *testing.T) {
	records, err := buildProfileRecords(fakeProfiles{"staging": {"output": "yaml"}}, "default")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, profileRecord{Name: "staging", Output: "yaml"}, records[0])
}

func TestRunListProfilesJSON(t *testing.T) {
	streams, _, out, _ := iostreams.NewTestIOStreams()
	c := &cobra.Command{Use: "profiles"}
	c.SetContext(context.WithValue(context.Background(), profile.ProfileManagerKey, profile.Manager(profiles)))

	helper := &testcmd.MockHelper{
		Cmd:     c,
		Streams: &streams,
		Format:  common.JSON,
		Config:  &testconfig.MockConfigHook{},
	}
	require.NoError(t, runListProfiles(helper))
	assert.Contains(t, out.String(), `"https://api.amora.app"`)
	assert.Contains(t, out.String(), `"base_url"`)
}

func TestRunListProfilesRequiresManager(t *testing.T) {
	helper := &testcmd.MockHelper{Config: &testconfig.MockConfigHook{}, Format: common.JSON}
	assert.Error(t, runListProfiles(helper))
}

func TestBuildThemeRecordsMarksActive(t *testing.T) {
	records := buildThemeRecords("amora-dark")
	require.NotEmpty(t, records)

	active := 0
	for _, r := range records {
		assert.NotEmpty(t, r.Accent, r.ID)
		if r.Active {
			active++
			assert.Equal(t, "amora-dark", r.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestActiveThemeNameDefaults(t *testing.T) {
	assert.Equal(t, common.DefaultColorTheme, activeThemeName(&testconfig.MockConfigHook{}))
	assert.Equal(t, "amora-dark", activeThemeName(&testconfig.MockConfigHook{
		Values: map[string]any{common.ColorThemeConfigPath: " Amora-Dark "},
	}))
}
