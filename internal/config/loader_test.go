package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hballab/handelo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	_ = os.Unsetenv("HANDELO_CONFIG")
	_ = os.Unsetenv("HANDELO_LOG_LEVEL")
	_ = os.Unsetenv("HANDELO_OUTPUT_DIR")
	_ = os.Unsetenv("HANDELO_RECENT_FORM_WINDOW")
	_ = os.Unsetenv("HANDELO_METRICS_ADDR")
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "results")
				convey.So(cfg.RecentFormWindow, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HANDELO_LOG_LEVEL", "debug")
			_ = os.Setenv("HANDELO_OUTPUT_DIR", "out")
			_ = os.Setenv("HANDELO_RECENT_FORM_WINDOW", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "out")
				convey.So(cfg.RecentFormWindow, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: warn
output_dir: reports
rating:
  max_change_per_event: 24
`
			dir := t.TempDir()
			path := filepath.Join(dir, "handelo.yaml")
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("HANDELO_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "reports")
				convey.So(cfg.Rating.MaxChangePerEvent, convey.ShouldEqual, 24)
			})
		})

		convey.Convey("When the file overrides the goal-diff tiers", func() {
			yamlContent := `
team:
  goal_diff_tiers:
    - max_diff: 3
      multiplier: 1.2
    - max_diff: 8
      multiplier: 1.5
  goal_diff_ceiling: 1.9
`
			dir := t.TempDir()
			path := filepath.Join(dir, "handelo.yaml")
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("HANDELO_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the tier table is replaced wholesale", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Team.GoalDiffTiers, convey.ShouldHaveLength, 2)
				convey.So(cfg.Team.GoalDiffTiers[1].MaxDiff, convey.ShouldEqual, 8)
				convey.So(cfg.Team.GoalDiffCeiling, convey.ShouldEqual, 1.9)
			})
		})

		convey.Convey("When the goal-diff tiers do not ascend", func() {
			yamlContent := `
team:
  goal_diff_tiers:
    - max_diff: 5
      multiplier: 1.3
    - max_diff: 2
      multiplier: 1.1
`
			dir := t.TempDir()
			path := filepath.Join(dir, "handelo.yaml")
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("HANDELO_CONFIG", path)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the file path is bogus", func() {
			_ = os.Setenv("HANDELO_CONFIG", "/nonexistent/handelo.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
