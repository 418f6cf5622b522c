package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/server"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCmd_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want classifier.Category
	}{
		{"standard", []string{"--width", "70", "--height", "80", "--length", "90", "--mass", "5"}, classifier.Standard},
		{"special", []string{"--width", "150", "--height", "100", "--length", "100", "--mass", "5"}, classifier.Special},
		{"rejected", []string{"--width", "150", "--height", "150", "--length", "150", "--mass", "20"}, classifier.Rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"classify"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want.String())
			assert.Contains(t, out, "Reason:")
		})
	}
}

func TestClassifyCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "classify", "--width", "200", "--height", "100", "--length", "50", "--mass", "10", "-o", "json")
	require.NoError(t, err)

	var result classifier.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, classifier.Special, result.Category)
	assert.True(t, result.Signals.BulkyByVolume)
	assert.InDelta(t, 1_000_000, result.Signals.VolumeCm3, 1e-6)
}

func TestClassifyCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"zero width", []string{"--width", "0", "--height", "100", "--length", "100", "--mass", "5"}, classifier.ErrInvalidDimensions},
		{"negative mass", []string{"--width", "100", "--height", "100", "--length", "100", "--mass", "-5"}, classifier.ErrInvalidMass},
		{"both invalid", []string{"--width", "-1", "--height", "100", "--length", "100", "--mass", "0"}, classifier.ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append([]string{"classify"}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var coded *codedError
			require.True(t, errors.As(err, &coded))
			assert.Equal(t, exitInvalidInput, coded.code)
		})
	}
}

func TestClassifyCmd_LogsInvalidInput(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "ops.log")
	t.Setenv("SORTER_LOGGING_OUTPUT", path)

	a := newApp()
	cmd := a.command()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "debug", "--log-format", "json",
		"classify", "--width", "100", "--height", "100", "--length", "100", "--mass", "0"})

	err := cmd.Execute()
	a.shutdown()
	require.ErrorIs(t, err, classifier.ErrInvalidMass)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Invalid parcel"`)
	assert.Contains(t, string(data), `"error":"invalid mass: mass must be a positive non-zero value (got 0 kg)"`)
}

func TestClassifyCmd_MissingFlag(t *testing.T) {
	_, err := runCLI(t, "classify", "--width", "1", "--height", "1", "--length", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mass")
}

func TestClassifyCmd_UnknownOutput(t *testing.T) {
	_, err := runCLI(t, "classify", "--width", "1", "--height", "1", "--length", "1", "--mass", "1", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestClassifyCmd_BadLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "classify", "--width", "1", "--height", "1", "--length", "1", "--mass", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sorter version "+server.Version+"\n", out)
}
