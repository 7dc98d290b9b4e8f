package nearest_test

import (
	"math"
	"testing"

	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/internal/domain/nearest"
	. "github.com/smartystreets/goconvey/convey"
)

func row(name string, complete bool, vals ...float64) model.Athlete {
	return model.Athlete{
		FirstName: name,
		Values:    model.NewVector(vals[0], vals[1], vals[2], vals[3], vals[4]),
		Complete:  complete,
	}
}

func TestFindClosest(t *testing.T) {
	Convey("Given a dataset with complete and incomplete rows", t, func() {
		ds := model.NewDataset([]model.Athlete{
			row("far", true, 200, 200, 1, 30, 40),
			row("partial", false, 100, 100, 0.6, 10, 0),
			row("near", true, 101, 99, 0.6, 10, 15),
			row("exact", true, 90, 95, 0.5, 9, 14),
		})

		Convey("When the subject equals an existing complete row", func() {
			m, err := nearest.FindClosest(ds, model.NewVector(90, 95, 0.5, 9, 14))

			Convey("Then that row is returned at distance zero", func() {
				So(err, ShouldBeNil)
				So(m.Athlete.FirstName, ShouldEqual, "exact")
				So(m.Distance, ShouldEqual, 0.0)
			})
		})

		Convey("When the subject equals an incomplete row", func() {
			m, err := nearest.FindClosest(ds, model.NewVector(100, 100, 0.6, 10, 0))

			Convey("Then the incomplete row is skipped", func() {
				So(err, ShouldBeNil)
				So(m.Athlete.FirstName, ShouldNotEqual, "partial")
				So(m.Distance, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When metrics differ in scale", func() {
			// Grip differences dominate the jump difference because distances are unscaled.
			m, err := nearest.FindClosest(ds, model.NewVector(101, 99, 5, 10, 15))
			So(err, ShouldBeNil)
			So(m.Athlete.FirstName, ShouldEqual, "near")
			So(m.Distance, ShouldAlmostEqual, math.Sqrt(2*4.4*4.4))
		})
	})

	Convey("Given two rows tied for the minimum", t, func() {
		ds := model.NewDataset([]model.Athlete{
			row("first", true, 1, 1, 1, 1, 1),
			row("second", true, 1, 1, 1, 1, 1),
		})
		m, err := nearest.FindClosest(ds, model.NewVector(2, 2, 2, 2, 2))

		Convey("Then the first encountered row wins", func() {
			So(err, ShouldBeNil)
			So(m.Athlete.FirstName, ShouldEqual, "first")
		})
	})

	Convey("Given no complete rows", t, func() {
		ds := model.NewDataset([]model.Athlete{row("partial", false, 1, 1, 1, 1, 1)})
		_, err := nearest.FindClosest(ds, model.Vector{})
		So(err, ShouldEqual, nearest.ErrNoCandidates)
	})
}
