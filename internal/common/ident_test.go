package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"count", "Count"},
		{"Count", "Count"},
		{"nickname", "Nickname"},
		{"éclair", "Éclair"},
		{"_hidden", "Get_hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportedName(tt.in))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Settings", "settings"},
		{"UserSettings", "user_settings"},
		{"HTTPConfig", "http_config"},
		{"prefs", "prefs"},
		{"AppV2Prefs", "app_v2_prefs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestAccessorNames(t *testing.T) {
	tests := []struct {
		in     string
		getter string
		setter string
	}{
		{"count", "Count", "SetCount"},
		{"nickname", "Nickname", "SetNickname"},
		{"getReady", "GetReady", "SetGetReady"},
		{"Getter", "Getter", "SetGetter"},
		{"_count", "Get_count", "Set_count"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			getter, setter := AccessorNames(tt.in)
			assert.Equal(t, tt.getter, getter)
			assert.Equal(t, tt.setter, setter)
		})
	}
}
