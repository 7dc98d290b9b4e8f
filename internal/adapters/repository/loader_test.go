package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/horsepower/internal/adapters/repository"
	"github.com/okian/horsepower/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

const header = "First Name,Last Name,Level,Age,Position,Grip Strength (Bottom Hand),Grip Strength (Top Hand),Vertical Jump,Med Ball SitUp,Med Ball Chest,Horsepower\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	Convey("Given a CSV dataset with gaps and junk cells", t, func() {
		path := writeFile(t, "athletes.csv", header+
			"Ana,Ruiz,College,20,Shortstop,100,90,0.5,10,20,999\n"+
			"Ben,Ode,MLB,n/a,Catcher,110,,0.6,abc,22,\n"+
			",,,,,,,,,,\n"+
			"Cal,Ng,Minors,23,,120,110,0.7,14,24,38.7\n")

		ds, err := repository.Load(context.Background(), path)

		Convey("Then every non-blank row is loaded in order", func() {
			So(err, ShouldBeNil)
			So(ds.Len(), ShouldEqual, 3)
			rows := ds.Rows()
			So(rows[0].FullName(), ShouldEqual, "Ana Ruiz")
			So(rows[2].Level, ShouldEqual, model.LevelMinors)
		})

		Convey("And Horsepower is recomputed rather than read", func() {
			rows := ds.Rows()
			So(rows[0].Value(model.Horsepower), ShouldEqual, 30.5)
		})

		Convey("And missing or non-numeric metrics become zero and mark the row incomplete", func() {
			ben := ds.Rows()[1]
			So(ben.Value(model.GripTop), ShouldEqual, 0.0)
			So(ben.Value(model.MedBallSitUp), ShouldEqual, 0.0)
			So(ben.Value(model.Horsepower), ShouldAlmostEqual, 22.6)
			So(ben.Complete, ShouldBeFalse)
			So(ben.HasAge, ShouldBeFalse)
			So(ds.CompleteCount(), ShouldEqual, 2)
		})

		Convey("And ages are numeric", func() {
			So(ds.Rows()[0].Age, ShouldEqual, 20.0)
			So(ds.Rows()[0].HasAge, ShouldBeTrue)
		})
	})

	Convey("Given a CSV without optional columns", t, func() {
		path := writeFile(t, "slim.csv",
			"first name,last name,level,Grip Strength (Bottom Hand),Grip Strength (Top Hand),Vertical Jump,Med Ball SitUp,Med Ball Chest\n"+
				"Ana,Ruiz,College,1,2,3,4,5\n")
		ds, err := repository.Load(context.Background(), path)

		Convey("Then headers match case-insensitively and rows still load", func() {
			So(err, ShouldBeNil)
			So(ds.Len(), ShouldEqual, 1)
			So(ds.Rows()[0].Position, ShouldEqual, "")
			So(ds.Rows()[0].Complete, ShouldBeTrue)
		})
	})

	Convey("Given a CSV missing a metric column", t, func() {
		path := writeFile(t, "broken.csv", "First Name,Last Name,Level\nAna,Ruiz,College\n")
		_, err := repository.Load(context.Background(), path)

		Convey("Then it fails with ErrMissingColumn", func() {
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})

	Convey("Given a TSV dataset", t, func() {
		path := writeFile(t, "athletes.tsv",
			"First Name\tLast Name\tLevel\tGrip Strength (Bottom Hand)\tGrip Strength (Top Hand)\tVertical Jump\tMed Ball SitUp\tMed Ball Chest\n"+
				"Ana\tRuiz\tMLB\t1\t2\t3\t4\t5\n")
		ds, err := repository.Load(context.Background(), path)
		So(err, ShouldBeNil)
		So(ds.Rows()[0].Value(model.Horsepower), ShouldEqual, 12.0)
	})
}

func TestLoadErrors(t *testing.T) {
	Convey("Given an unsupported extension", t, func() {
		_, err := repository.Load(context.Background(), "athletes.json")
		So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
	})

	Convey("Given a missing file", t, func() {
		_, err := repository.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
	})

	Convey("Given an empty file", t, func() {
		_, err := repository.Load(context.Background(), writeFile(t, "empty.csv", ""))
		So(errors.Is(err, repository.ErrEmptyTable), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := repository.Load(ctx, writeFile(t, "a.csv", header+"Ana,Ruiz,College,20,SS,1,2,3,4,5,\n"))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestLoadXLSX(t *testing.T) {
	Convey("Given an XLSX workbook", t, func() {
		path := filepath.Join(t.TempDir(), "athletes.xlsx")
		f := excelize.NewFile()
		So(f.SetSheetName("Sheet1", "Athletes"), ShouldBeNil)
		So(f.SetSheetRow("Athletes", "A1", &[]any{
			"First Name", "Last Name", "Level", "Age", "Position",
			"Grip Strength (Bottom Hand)", "Grip Strength (Top Hand)", "Vertical Jump", "Med Ball SitUp", "Med Ball Chest",
		}), ShouldBeNil)
		So(f.SetSheetRow("Athletes", "A2", &[]any{"Ana", "Ruiz", "College", 20, "Shortstop", 100, 90, 0.5, 10, 20}), ShouldBeNil)
		So(f.SetSheetRow("Athletes", "A3", &[]any{"Ben", "Ode", "MLB", 24, "Catcher", 110, 100, 0.6, 12}), ShouldBeNil)
		So(f.SaveAs(path), ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		Convey("When loading the first sheet", func() {
			ds, err := repository.Load(context.Background(), path)

			Convey("Then rows are coerced like CSV rows", func() {
				So(err, ShouldBeNil)
				So(ds.Len(), ShouldEqual, 2)
				So(ds.Rows()[0].Value(model.Horsepower), ShouldEqual, 30.5)
				So(ds.Rows()[1].Value(model.MedBallChest), ShouldEqual, 0.0)
				So(ds.Rows()[1].Complete, ShouldBeFalse)
			})
		})

		Convey("When naming a sheet that does not exist", func() {
			_, err := repository.Load(context.Background(), path, repository.WithSheet("Nope"))
			So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a store over a small dataset", t, func() {
		ds := model.NewDataset([]model.Athlete{{Complete: true}, {}})
		s := repository.NewMemoryStore(ds, "memory")
		ctx := context.Background()

		Convey("Then it reports counts and source", func() {
			So(s.Count(ctx), ShouldEqual, 2)
			So(s.CompleteCount(ctx), ShouldEqual, 1)
			So(s.Source(), ShouldEqual, "memory")
			So(s.Dataset(ctx), ShouldPointTo, ds)
		})

		Convey("And a nil dataset behaves as empty", func() {
			empty := repository.NewMemoryStore(nil, "")
			So(empty.Count(ctx), ShouldEqual, 0)
		})
	})
}
