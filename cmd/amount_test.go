package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAmount(t *testing.T, args ...string) (string, error) {
	t.Helper()
	amountFormat = "comma-dot"
	amountHideFraction = false

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"amount"}, args...))
	err := RootCmd.Execute()
	return out.String(), err
}

func TestAmountCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format default", []string{"format", "123456"}, "1,234.56\n"},
		{"format dot-comma", []string{"format", "-123456", "--format", "dot-comma"}, "-1.234,56\n"},
		{"format hidden fraction", []string{"format", "123456", "--hide-fraction"}, "1,235\n"},
		{"parse", []string{"parse", "1.234,56", "--format", "dot-comma"}, "123456\n"},
		{"loose", []string{"loose", "(1,234.56)"}, "-123456\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runAmount(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestAmountCommands_Errors(t *testing.T) {
	_, err := runAmount(t, "format", "12.5")
	assert.Error(t, err)

	_, err = runAmount(t, "format", "1", "--format", "roman")
	assert.ErrorContains(t, err, `unknown number format "roman"`)

	_, err = runAmount(t, "loose", "abc")
	assert.ErrorContains(t, err, `cannot parse "abc"`)
}

func TestConfirm(t *testing.T) {
	yesConfirm = false
	var out bytes.Buffer
	assert.True(t, confirm(bytes.NewBufferString("yes\n"), &out))
	assert.False(t, confirm(bytes.NewBufferString("no\n"), &out))
	assert.False(t, confirm(bytes.NewBufferString(""), &out))

	yesConfirm = true
	defer func() { yesConfirm = false }()
	assert.True(t, confirm(bytes.NewBufferString(""), &out))
}
