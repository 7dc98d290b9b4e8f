package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	repository "github.com/okian/horsepower/internal/adapters/repository"
	app "github.com/okian/horsepower/internal/app"
	"github.com/okian/horsepower/internal/config"
	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/pkg/logger"
	"github.com/okian/horsepower/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("HP_ADDR", ":8080")
			_ = os.Setenv("HP_DATASET_PATH", "athletes.csv")
			defer func() {
				_ = os.Unsetenv("HP_ADDR")
				_ = os.Unsetenv("HP_DATASET_PATH")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "athletes.csv")
			})
		})

		convey.Convey("When the dataset file does not exist", func() {
			_ = os.Setenv("HP_DATASET_PATH", filepath.Join(t.TempDir(), "missing.csv"))
			defer func() { _ = os.Unsetenv("HP_DATASET_PATH") }()

			convey.Convey("Then run fails before serving", func() {
				err := run(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the dataset loads and the context is cancelled while serving", func() {
			path := filepath.Join(t.TempDir(), "hp.csv")
			content := "First Name,Last Name,Level,Age,Position,Grip Strength (Bottom Hand),Grip Strength (Top Hand),Vertical Jump,Med Ball SitUp,Med Ball Chest\n" +
				"Ana,Ruiz,College,20,Shortstop,100,90,0.5,10,20\n"
			convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("HP_DATASET_PATH", path)
			_ = os.Setenv("HP_ADDR", "127.0.0.1:0")
			defer func() {
				_ = os.Unsetenv("HP_DATASET_PATH")
				_ = os.Unsetenv("HP_ADDR")
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
			defer cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			updateSystemMetrics()

			convey.Convey("Then the goroutine gauge is populated", func() {
				body := httptest.NewRecorder()
				newHandler(config.New(), app.New()).ServeHTTP(body, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				convey.So(body.Body.String(), convey.ShouldContainSubstring, "horsepower_system_goroutines")
				convey.So(testutil.CollectAndCount(metrics.GetRegistry()), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When building the handler over a started service", func() {
			ds := model.NewDataset([]model.Athlete{
				{FirstName: "Ana", LastName: "Ruiz", Level: model.LevelCollege, Values: model.NewVector(100, 90, 0.5, 10, 20), Complete: true},
			})
			svc := app.New(app.WithStore(repository.NewMemoryStore(ds, "memory")))
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()
			h := newHandler(config.New(), svc)

			convey.Convey("Then compare routes are served", func() {
				w := httptest.NewRecorder()
				body := `{"subject":{"name":"Sam","grip_bottom":100,"grip_top":90,"vertical_jump":0.5,"med_ball_situp":10,"med_ball_chest":20}}`
				h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/compare/closest", strings.NewReader(body)))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Closest Match: Ana Ruiz")
			})
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater on the manager's interval", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx, metrics.RefreshInterval())
			close(done)
		}()

		convey.Convey("When the context is cancelled", func() {
			cancel()

			convey.Convey("Then the loop exits", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("updater did not stop")
				}
				convey.So(metrics.RefreshInterval(), convey.ShouldBeGreaterThan, time.Duration(0))
			})
		})
	})
}
