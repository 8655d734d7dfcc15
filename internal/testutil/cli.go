package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// CaptureOutput returns everything fn writes to os.Stdout
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err, "create stdout pipe")
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	return <-outC
}

// ExecuteCommand runs a cobra command and returns what it printed to stdout.
// Commands print through both fmt and cmd.OutOrStdout, so stdout itself is
// captured.
func ExecuteCommand(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return output, executeErr
}

// ParseJSON decodes the single JSON object a command printed in --json mode
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result), "output: %s", output)
	return result
}

// SetupCobraCommand sets args and silences cobra's own error and usage output
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
