package config

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, c.Version)
	assert.Equal(t, DefaultStoreField, c.StoreField)
	assert.Equal(t, DefaultRegistrarField, c.RegistrarField)
	assert.Equal(t, DefaultFileSuffix, c.FileSuffix)
	assert.Empty(t, c.KeyPrefix)
	assert.False(t, Validate(c).HasErrors())
}

func TestParse_OwnerOverrides(t *testing.T) {
	data := heredoc.Doc(`
		version: "1"
		store_field: defaults
		key_prefix: "app."
		owners:
		  Settings:
		    receiver: cfg
		    key_prefix: ""
		  Profile:
		    registrar_field: obs
	`)

	c, err := Parse([]byte(data))
	require.NoError(t, err)
	require.False(t, Validate(c).HasErrors())

	settings := c.ForOwner("Settings")
	assert.Equal(t, OwnerSettings{
		StoreField:     "defaults",
		RegistrarField: DefaultRegistrarField,
		Receiver:       "cfg",
		KeyPrefix:      "",
	}, settings)

	profile := c.ForOwner("Profile")
	assert.Equal(t, OwnerSettings{
		StoreField:     "defaults",
		RegistrarField: "obs",
		Receiver:       "p",
		KeyPrefix:      "app.",
	}, profile)

	other := c.ForOwner("Other")
	assert.Equal(t, "app.", other.KeyPrefix)
	assert.Equal(t, "o", other.Receiver)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("owners: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/kvgen.yaml", []byte("key_prefix: prefs.\n"), 0o644))

	c, err := LoadFile(fs, "/proj/kvgen.yaml")
	require.NoError(t, err)
	assert.Equal(t, "prefs.", c.KeyPrefix)

	_, err = LoadFile(fs, "/proj/missing.yaml")
	require.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	prefix := "s."
	c := Default()
	c.Owners = map[string]Owner{"Settings": {KeyPrefix: &prefix}}

	data, err := Marshal(c)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "s.", back.ForOwner("Settings").KeyPrefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		codes []string
	}{
		{"valid", `store_field: kv`, nil},
		{"bad version", `version: "2"`, []string{"unsupported_version"}},
		{"bad store field", `store_field: "my store"`, []string{"invalid_identifier"}},
		{"blank receiver", `receiver: _`, []string{"invalid_identifier"}},
		{"reserved receiver", `receiver: value`, []string{"reserved_receiver"}},
		{"reserved owner receiver", "owners:\n  Settings:\n    receiver: kvstore", []string{"reserved_receiver"}},
		{"test file suffix", `file_suffix: _gen_test.go`, []string{"invalid_file_suffix"}},
		{"bad owner", "owners:\n  \"1Settings\": {}", []string{"invalid_owner"}},
		{"bad owner field", "owners:\n  Settings:\n    registrar_field: \"a-b\"", []string{"invalid_identifier"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			var codes []string
			for _, d := range Validate(c).Errors {
				codes = append(codes, d.Code)
			}

			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "s", ReceiverName("Settings"))
	assert.Equal(t, "u", ReceiverName("_userPrefs"))
	assert.Equal(t, "x", ReceiverName(""))
}
