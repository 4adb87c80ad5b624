package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"RECTBOARD_API_PORT", "RECTBOARD_FEED_PORT", "RECTBOARD_ENV",
		"RECTBOARD_CANVAS_WIDTH", "RECTBOARD_CANVAS_HEIGHT", "RECTBOARD_DB_PATH",
		"RECTBOARD_ADVERTISE", "RECTBOARD_HEADLESS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.FeedPort != 8888 {
		t.Errorf("FeedPort = %d", cfg.FeedPort)
	}
	if cfg.CanvasWidth != 1024 || cfg.CanvasHeight != 768 {
		t.Errorf("canvas = %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if !cfg.Advertise || cfg.Headless {
		t.Errorf("Advertise = %v, Headless = %v", cfg.Advertise, cfg.Headless)
	}
	if cfg.DBPath != "data/rectboard.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECTBOARD_API_PORT", "9000")
	t.Setenv("RECTBOARD_FEED_PORT", "9001")
	t.Setenv("RECTBOARD_CANVAS_WIDTH", "400")
	t.Setenv("RECTBOARD_CANVAS_HEIGHT", "not-a-number")
	t.Setenv("RECTBOARD_ADVERTISE", "false")
	t.Setenv("RECTBOARD_HEADLESS", "1")

	cfg := Load()
	if cfg.APIPort != "9000" || cfg.FeedPort != 9001 {
		t.Errorf("ports = %q, %d", cfg.APIPort, cfg.FeedPort)
	}
	if cfg.CanvasWidth != 400 {
		t.Errorf("CanvasWidth = %d", cfg.CanvasWidth)
	}
	if cfg.CanvasHeight != 768 {
		t.Errorf("bad CanvasHeight should fall back to default, got %d", cfg.CanvasHeight)
	}
	if cfg.Advertise || !cfg.Headless {
		t.Errorf("Advertise = %v, Headless = %v", cfg.Advertise, cfg.Headless)
	}
}
