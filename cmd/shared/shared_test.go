package shared

import (
	"strings"
	"testing"
)

func TestGetBaseDescription(t *testing.T) {
	t.Parallel()

	desc := GetBaseDescription()

	if desc == "" {
		t.Error("GetBaseDescription() should not return empty string")
	}

	if !strings.Contains(desc, "tcp") {
		t.Error("description should mention tcp protocol")
	}

	if !strings.Contains(desc, "ws") {
		t.Error("description should mention ws protocol")
	}

	if !strings.Contains(desc, "wss") {
		t.Error("description should mention wss protocol")
	}
}

func TestGetArgsUsage(t *testing.T) {
	t.Parallel()

	usage := GetArgsUsage()

	if usage == "" {
		t.Error("GetArgsUsage() should not return empty string")
	}

	if !strings.Contains(usage, "transport") {
		t.Error("usage should mention transport")
	}
}

func TestGetCommonFlags(t *testing.T) {
	t.Parallel()

	flags := GetCommonFlags()

	if flags == nil {
		t.Fatal("GetCommonFlags() returned nil")
	}

	if len(flags) == 0 {
		t.Error("GetCommonFlags() should return at least one flag")
	}

	// Check for expected flags
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if names := flag.Names(); len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	expectedFlags := []string{VerboseFlag, TimeoutFlag, RetriesFlag}
	for _, name := range expectedFlags {
		if !flagNames[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}

func TestGetSessionFlags(t *testing.T) {
	t.Parallel()

	flags := GetSessionFlags()

	if flags == nil {
		t.Fatal("GetSessionFlags() returned nil")
	}

	if len(flags) == 0 {
		t.Error("GetSessionFlags() should return at least one flag")
	}

	// Check for expected flags
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if names := flag.Names(); len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	expectedFlags := []string{LoginFlag, PasswordFlag, RawFlag, LogFileFlag}
	for _, name := range expectedFlags {
		if !flagNames[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}

func TestFlagConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
	}{
		{"VerboseFlag", VerboseFlag},
		{"TimeoutFlag", TimeoutFlag},
		{"RetriesFlag", RetriesFlag},
		{"LoginFlag", LoginFlag},
		{"PasswordFlag", PasswordFlag},
		{"RawFlag", RawFlag},
		{"LogFileFlag", LogFileFlag},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.constant == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
		})
	}
}
