package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/horsepower/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "CleanHPdata2.1.csv")
				convey.So(cfg.DatasetSheet, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HP_ADDR", ":8080")
			_ = os.Setenv("HP_DATASET_PATH", "/data/athletes.xlsx")
			_ = os.Setenv("HP_DATASET_SHEET", "2024")
			_ = os.Setenv("HP_LOG_FORMAT", "json")
			_ = os.Setenv("HP_MAX_BODY_BYTES", "1024")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/athletes.xlsx")
				convey.So(cfg.DatasetSheet, convey.ShouldEqual, "2024")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(1024))
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
dataset_path: "file.csv"
log_level: debug
`)
			_ = os.Setenv("HP_CONFIG", tmpFile)
			_ = os.Setenv("HP_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "file.csv")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(64<<10))
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("HP_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HP_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HP_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid number", func() {
			_ = os.Setenv("HP_MAX_BODY_BYTES", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		noDataset := config.New()
		noDataset.DatasetPath = " "
		noBody := config.New()
		noBody.MaxBodyBytes = 0

		convey.So(errors.Is(noDataset.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(noBody.Validate().Error(), convey.ShouldContainSubstring, "max_body_bytes")
	})
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"HP_CONFIG", "HP_ADDR", "HP_LOG_LEVEL", "HP_LOG_FORMAT",
		"HP_DATASET_PATH", "HP_DATASET_SHEET", "HP_MAX_BODY_BYTES",
	} {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return f.Name()
}
