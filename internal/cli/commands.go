package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/okian/horsepower/internal/domain/compare"
	"github.com/okian/horsepower/internal/domain/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// subjectFlags holds the subject inputs as text so that junk input coerces
// to zero instead of failing flag parsing.
type subjectFlags struct {
	name         string
	gripBottom   string
	gripTop      string
	verticalJump string
	sitUp        string
	chest        string
}

func (s *subjectFlags) register(f *pflag.FlagSet) {
	f.StringVar(&s.name, "name", "", "subject name")
	f.StringVar(&s.gripBottom, "grip-bottom", "", "grip strength, bottom hand")
	f.StringVar(&s.gripTop, "grip-top", "", "grip strength, top hand")
	f.StringVar(&s.verticalJump, "vertical-jump", "", "vertical jump")
	f.StringVar(&s.sitUp, "situp", "", "med ball sit-up throw")
	f.StringVar(&s.chest, "chest", "", "med ball chest throw")
}

func (s *subjectFlags) subject() model.Subject {
	num := func(text string) float64 {
		v, _ := model.ParseNumber(text)
		return v
	}
	return model.Subject{
		Name:         s.name,
		GripBottom:   num(s.gripBottom),
		GripTop:      num(s.gripTop),
		VerticalJump: num(s.verticalJump),
		MedBallSitUp: num(s.sitUp),
		MedBallChest: num(s.chest),
	}
}

func (a *app) levelCommand() *cobra.Command {
	var by, value string
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Rank the subject within a level or age group against the group average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.svc.CompareLevel(cmd.Context(), a.subject.subject(), compare.GroupBy(strings.ToLower(by)), value)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), c)
		},
	}
	a.subject.register(cmd.Flags())
	cmd.Flags().StringVar(&by, "by", string(compare.GroupByLevel), "group by level or age")
	cmd.Flags().StringVar(&value, "value", "", "level name or age")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *app) playerCommand() *cobra.Command {
	var first, last string
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Compare the subject with a named athlete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.svc.ComparePlayer(cmd.Context(), a.subject.subject(), first, last)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), c)
		},
	}
	a.subject.register(cmd.Flags())
	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&last, "last", "", "last name")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	return cmd
}

func (a *app) closestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closest",
		Short: "Compare the subject with the most similar athlete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.svc.CompareClosest(cmd.Context(), a.subject.subject())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), c)
		},
	}
	a.subject.register(cmd.Flags())
	return cmd
}

func (a *app) positionCommand() *cobra.Command {
	var level, position string
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Compare the subject with a position's average within a level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.svc.ComparePosition(cmd.Context(), a.subject.subject(), model.Level(level), position)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), c)
		},
	}
	a.subject.register(cmd.Flags())
	cmd.Flags().StringVar(&level, "level", "", "level name")
	cmd.Flags().StringVar(&position, "position", "", "position, or Middle Infield / Corner Infield")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}

func (a *app) spreadCommand() *cobra.Command {
	var by, value string
	cmd := &cobra.Command{
		Use:   "spread",
		Short: "Express the subject as a fraction of a group's mean with its spread",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.svc.CompareSpread(cmd.Context(), a.subject.subject(), compare.GroupBy(strings.ToLower(by)), value)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), c)
		},
	}
	a.subject.register(cmd.Flags())
	cmd.Flags().StringVar(&by, "by", string(compare.GroupByLevel), "group by level or age")
	cmd.Flags().StringVar(&value, "value", "", "level name or age")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *app) optionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List levels, positions and metrics in the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := a.svc.Options(cmd.Context())
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			tbl := newTable()
			tbl.AppendHeader(table.Row{"Levels", "Positions", "Metrics"})
			rows := max(len(o.Levels), len(o.Positions), len(o.Metrics))
			for i := 0; i < rows; i++ {
				tbl.AppendRow(table.Row{at(o.Levels, i), at(o.Positions, i), at(o.Metrics, i)})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return err
		},
	}
}

func (a *app) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Report which subject inputs are missing",
		Annotations: map[string]string{skipDataset: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := model.Validate(a.subject.subject())
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			if v.Complete() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "All inputs entered.")
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Missing: %s\n", strings.Join(v.Missing, ", "))
			return err
		},
	}
	a.subject.register(cmd.Flags())
	return cmd
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
