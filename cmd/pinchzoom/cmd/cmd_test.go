package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestParseSize(t *testing.T) {
	size, err := parseSize("200x400")
	if err != nil {
		t.Fatalf("parseSize: %v", err)
	}
	if size.Width != 200 || size.Height != 400 {
		t.Errorf("got %+v, want 200x400", size)
	}

	for _, bad := range []string{"200", "ax400", "0x400", "200x-1"} {
		if _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) succeeded, want error", bad)
		}
	}
}

func TestLoadZoomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom.json")
	data := `{"min_zoom": 0.5, "max_zoom": 3, "settle_duration_ms": 150}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &cobra.Command{Use: "test"}
	addZoomFlags(c)
	if err := c.ParseFlags([]string{"--config", path, "--max-zoom", "6"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg, err := loadZoomConfig(c)
	if err != nil {
		t.Fatalf("loadZoomConfig: %v", err)
	}
	if cfg.MinZoom != 0.5 {
		t.Errorf("MinZoom = %v, want 0.5 from file", cfg.MinZoom)
	}
	if cfg.MaxZoom != 6 {
		t.Errorf("MaxZoom = %v, want 6 from flag", cfg.MaxZoom)
	}
	if cfg.SettleDuration != 150*time.Millisecond {
		t.Errorf("SettleDuration = %v, want 150ms", cfg.SettleDuration)
	}
	if cfg.ZoomSensitivity != 200 {
		t.Errorf("ZoomSensitivity = %v, want default 200", cfg.ZoomSensitivity)
	}
}

func TestLoadZoomConfigInvalid(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addZoomFlags(c)
	if err := c.ParseFlags([]string{"--min-zoom", "3", "--max-zoom", "2"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := loadZoomConfig(c); err == nil {
		t.Error("expected error for max-zoom below min-zoom")
	}
}

func TestBoundsCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bounds", "200x400", "--viewport", "400x400", "--zoom", "2"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("bounds: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "base scale 2.0000") {
		t.Errorf("missing base scale in:\n%s", got)
	}
	if !strings.Contains(got, "x [-200.00, 200.00]  y [-600.00, 600.00]") {
		t.Errorf("unexpected bounds in:\n%s", got)
	}
}

func TestReplayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinch.gesture")
	src := `viewport 400 400
start
move (150,200) (250,200)
move (140,200) (260,200)
end
wait 300ms
expect scale 1.1
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"replay", path, "--image", "200x400"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("replay: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ 7 steps") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
