package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/domain/filters"
	"city-geo-events/internal/platform/logger"
	"city-geo-events/internal/session"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Fetch a city once, apply filters and print the visible events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "city", Usage: "City slug; defaults to default_city"},
			&cli.StringSliceFlag{Name: "type", Usage: "Event type (repeatable)"},
			&cli.StringSliceFlag{Name: "source", Usage: "Event source (repeatable)"},
			&cli.StringFlag{Name: "quick", Usage: "today | tomorrow | week | month"},
			&cli.StringFlag{Name: "from", Usage: "Range start, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "Range end, YYYY-MM-DD (inclusive)"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text search"},
			&cli.IntFlag{Name: "cap", Value: -1, Usage: "Display cap; -1 uses display.max_markers, 0 disables"},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("quick") && c.IsSet("from") {
				return errors.New("--quick and --from are mutually exclusive")
			}

			a, err := build(c)
			if err != nil {
				return err
			}
			loc := a.cfg.Location()

			city := c.String("city")
			if strings.TrimSpace(city) == "" {
				city = a.cfg.DefaultCity
			}

			s := session.New(a.cache, session.Options{
				DisplayCap: a.cfg.Display.MaxMarkers,
				Location:   loc,
				Logger:     a.log,
			})

			err = s.UpdateFilters(func(st *filters.State) error {
				st.SetEventTypes(toTypes(a.log, c.StringSlice("type")))
				st.SetSources(toSources(a.log, c.StringSlice("source")))
				st.SetQuery(c.String("query"))

				switch {
				case c.IsSet("quick"):
					return st.SetQuickFilter(c.String("quick"))
				case c.IsSet("from"):
					start, err := time.ParseInLocation("2006-01-02", c.String("from"), loc)
					if err != nil {
						return fmt.Errorf("--from: %w", err)
					}
					var end *time.Time
					if c.IsSet("to") {
						e, err := time.ParseInLocation("2006-01-02", c.String("to"), loc)
						if err != nil {
							return fmt.Errorf("--to: %w", err)
						}
						end = &e
					}
					return st.SetExplicitRange(start, end)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if err := s.SetCity(c.Context, city); err != nil {
				return err
			}
			v, err := s.ViewWithCap(c.Int("cap"))
			if err != nil {
				return err
			}

			header := v.Label
			if v.Stale {
				header += " (stale)"
			}
			fmt.Println(header)

			return writeTable(os.Stdout, v.Events)
		},
	}
}

const permanentLabel = "постоянно"

func writeTable(w io.Writer, rows []session.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tEND\tTYPE\tSOURCE\tTITLE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, formatStart(r), formatEnd(r),
			events.EventTypeLabel(r.EventType), events.SourceLabel(r.Source), r.Title)
	}
	return tw.Flush()
}

func formatStart(r session.Row) string {
	if r.Start == nil {
		return r.StartTime.Raw
	}
	return r.Start.Format("2006-01-02 15:04")
}

// formatEnd muestra el centinela de permanente como etiqueta, nunca como año 3000.
func formatEnd(r session.Row) string {
	switch {
	case r.OpenEnded:
		return permanentLabel
	case r.End != nil:
		return r.End.Format("2006-01-02 15:04")
	}
	return "-"
}

func toTypes(log logger.Logger, in []string) []events.EventType {
	out := make([]events.EventType, 0, len(in))
	for _, v := range in {
		t := events.EventType(strings.ToLower(strings.TrimSpace(v)))
		if !t.Known() {
			log.Warn("unknown event type", map[string]any{"type": string(t)})
		}
		out = append(out, t)
	}
	return out
}

func toSources(log logger.Logger, in []string) []events.Source {
	out := make([]events.Source, 0, len(in))
	for _, v := range in {
		src := events.Source(strings.ToLower(strings.TrimSpace(v)))
		if !src.Known() {
			log.Warn("unknown event source", map[string]any{"source": string(src)})
		}
		out = append(out, src)
	}
	return out
}
