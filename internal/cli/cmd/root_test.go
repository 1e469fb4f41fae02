package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points config and state directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HOME", dir)
	t.Setenv("VIDEOCALC_PRESETS", filepath.Join(dir, "presets.yaml"))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var ee *ExitError
	require.ErrorAs(t, err, &ee)
	return ee.Code
}

func TestCalcText(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "calc", "-c", "delivery", "--codec", "h264", "--variant", "High Profile", "-d", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "900 MB")
	assert.Contains(t, out, "12 Mbps")
	assert.Contains(t, out, "0h 10m 0s")
}

func TestCalcYAMLReportsAutoSelection(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "calc", "-c", "raw", "--codec", "arri_raw", "-o", "yaml")
	require.NoError(t, err)

	var rep calcReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "ARRIRAW 4.5K LF", rep.Variant)
	assert.Equal(t, "4K DCI", rep.Resolution)
	assert.Equal(t, "30", rep.FrameRate)
	assert.Equal(t, 2027.0, rep.BitrateMbps)
	assert.Equal(t, 912150.0, rep.FileSizeMB)
	assert.Equal(t, "01:00:00", rep.Duration)
	assert.Contains(t, rep.Query, "codec=arri_raw")
	require.Len(t, rep.Adjusted, 2)
	assert.Contains(t, rep.Adjusted[0], "variant set to")
	assert.Contains(t, rep.Adjusted[1], "resolution changed from")
}

func TestCalcFromLinkAndPreset(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "calc", "--link", "?category=cinema&codec=dcp&variant=DCP+2K", "-o", "yaml")
	require.NoError(t, err)
	var rep calcReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "2K DCI", rep.Resolution)
	assert.Equal(t, "24", rep.FrameRate)
	assert.Equal(t, 250.0, rep.BitrateMbps)

	out, _, err = run(t, "calc", "--preset", "news tv")
	require.NoError(t, err)
	assert.Contains(t, out, "22.50 GB")

	_, _, err = run(t, "calc", "--preset", "News TV", "--link", "?category=raw")
	assert.Equal(t, ExitCLIError, exitCode(t, err))

	_, _, err = run(t, "calc", "--preset", "missing")
	assert.Equal(t, ExitCLIError, exitCode(t, err))
}

func TestCalcErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name    string
		args    []string
		code    int
		message string
	}{
		{"incomplete", []string{"calc", "-c", "delivery"}, ExitIncomplete, "choose --codec from: h264, hevc"},
		{"zero duration", []string{"calc", "-c", "delivery", "--codec", "hevc", "-d", "0"}, ExitIncomplete, "duration"},
		{"bad duration", []string{"calc", "-d", "soon"}, ExitCLIError, "--duration"},
		{"bad output", []string{"calc", "-o", "xml"}, ExitCLIError, "--output"},
		{"bad capacity", []string{"calc", "--capacity", "lots"}, ExitCLIError, "--capacity"},
		{"missing catalog", []string{"calc", "--catalog", "/nonexistent/codecs.yaml"}, ExitCatalogError, "codec database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Equal(t, tt.code, exitCode(t, err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCalcCapacityAndReport(t *testing.T) {
	dir := isolate(t)
	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(reports, 0o755))

	out, errOut, err := run(t, "calc", "-c", "delivery", "--codec", "h264", "--variant", "High Profile",
		"--capacity", "1TB", "--report", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "1.00 TB holds 185h 11m 6s of footage")
	assert.Contains(t, errOut, "Report written")

	data, err := os.ReadFile(filepath.Join(reports, "h264_High_Profile_1080p_30.yaml"))
	require.NoError(t, err)
	var rep calcReport
	require.NoError(t, yaml.Unmarshal(data, &rep))
	require.NotNil(t, rep.Capacity)
	assert.Equal(t, 666666, rep.Capacity.Seconds)
	assert.Equal(t, 5400.0, rep.FileSizeMB)
}

func TestBinaryUnitsFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("VIDEOCALC_BINARY_UNITS", "true")
	out, _, err := run(t, "calc", "--preset", "News TV")
	require.NoError(t, err)
	assert.Contains(t, out, "21.97 GiB")
}

func TestOptions(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "options", "codec", "-c", "camera")
	require.NoError(t, err)
	assert.Contains(t, out, "xdcam")
	assert.Contains(t, out, "dvcpro")

	out, _, err = run(t, "options", "framerate", "-c", "broadcast", "--codec", "jpeg2000",
		"--variant", "J2K Broadcast HD", "-r", "1080i")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "  25 "))
	assert.True(t, strings.HasPrefix(lines[2], "* 30 "))
	assert.Contains(t, lines[3], "Interlaced content typically uses")

	_, _, err = run(t, "options", "hours")
	assert.Equal(t, ExitCLIError, exitCode(t, err))
}

func TestLink(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "link", "-c", "cinema", "--codec", "dcp", "--variant", "DCP 4K", "-d", "2:00:00")
	require.NoError(t, err)
	assert.Equal(t, "?category=cinema&codec=dcp&framerate=24&hours=2&resolution=4K+DCI&variant=DCP+4K", strings.TrimSpace(out))

	out, _, err = run(t, "link", "--base", "https://calc.example.com/", "-c", "raw")
	require.NoError(t, err)
	assert.Equal(t, "https://calc.example.com/?category=raw", strings.TrimSpace(out))

	out, _, err = run(t, "link", "https://calc.example.com/?category=raw&codec=braw&resolution=6K&minutes=75")
	require.NoError(t, err)
	assert.Contains(t, out, "category:   raw")
	assert.Contains(t, out, "codec:      braw")
	assert.Contains(t, out, "resolution: 6K")
	assert.Contains(t, out, "duration:   01:59:00")
}

func TestPresetsLifecycle(t *testing.T) {
	dir := isolate(t)
	store := filepath.Join(dir, "presets.yaml")

	out, _, err := run(t, "presets", "add", "Dailies", "-c", "raw", "--codec", "braw", "--variant", "BRAW 12:1", "-r", "4K", "-f", "24")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved preset "Dailies"`)

	out, _, err = run(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dailies")
	assert.Contains(t, out, "YouTube 1080p")

	_, _, err = run(t, "presets", "add", "news tv", "-c", "raw", "--codec", "braw")
	assert.Equal(t, ExitCLIError, exitCode(t, err))

	_, _, err = run(t, "presets", "add", "Half")
	assert.Equal(t, ExitIncomplete, exitCode(t, err))

	_, _, err = run(t, "presets", "update", "dailies", "--name", "Dailies 25", "-f", "25")
	require.NoError(t, err)
	out, _, err = run(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dailies 25")
	assert.Contains(t, out, "BRAW 12:1 / 4K / 25 fps")

	out, _, err = run(t, "calc", "--preset", "Dailies 25", "-d", "20:00")
	require.NoError(t, err)
	assert.Contains(t, out, "17.55 GB")

	_, _, err = run(t, "presets", "delete", "Dailies 25")
	require.NoError(t, err)
	_, _, err = run(t, "presets", "delete", "Dailies 25")
	assert.Equal(t, ExitCLIError, exitCode(t, err))

	_, _, err = run(t, "presets", "reset")
	require.NoError(t, err)
	_, err = os.Stat(store)
	assert.True(t, os.IsNotExist(err))
}

func TestCatalogCommands(t *testing.T) {
	dir := isolate(t)

	out, _, err := run(t, "catalog", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "codec database OK")

	out, _, err = run(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "delivery")
	assert.Contains(t, out, "High Profile")

	bad := filepath.Join(dir, "bad.yaml")
	data := `categories:
  - id: test
    name: Test
    codecs:
      - id: c
        name: C
        variants:
          - name: Empty
            bitrates: {}
          - name: Odd
            bitrates:
              1080p: { "30": 0 }
`
	require.NoError(t, os.WriteFile(bad, []byte(data), 0o644))
	out, errOut, err := run(t, "catalog", "check", "--catalog", bad)
	assert.Equal(t, ExitCatalogError, exitCode(t, err))
	assert.Contains(t, out, "test / c / Empty: bitrate table is empty")
	assert.Contains(t, out, "non-positive bitrate 0")
	assert.Contains(t, errOut, "bitrate table is empty", "issues are also logged")
}

func TestCompletion(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "videocalc")

	out, _, err = run(t, "__complete", "calc", "-c", "delivery", "--codec", "")
	require.NoError(t, err)
	assert.Contains(t, out, "h264")
	assert.Contains(t, out, "hevc")
	assert.NotContains(t, out, "prores")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}
