package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
)

type JournalCmd struct {
	Write  JournalWriteCmd  `cmd:"" help:"Write (or replace) the entry for a day."`
	Show   JournalShowCmd   `cmd:"" help:"Show the entry for a day."`
	List   JournalListCmd   `cmd:"" help:"List entries, newest first, with statistics."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete the entry for a day."`
}

type JournalWriteCmd struct {
	Content []string `arg:"" help:"Entry text."`
	Date    string   `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Score   int      `short:"s" help:"Discipline score (1-10)." default:"5"`
}

func (c *JournalWriteCmd) Validate() error {
	if c.Score < 1 || c.Score > 10 {
		return fmt.Errorf("score must be between 1 and 10")
	}
	return nil
}

func (c *JournalWriteCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Journal.Save(context.Background(), date, strings.Join(c.Content, " "), c.Score)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Saved journal entry for %s (discipline %d/10)\n", e.Date, e.DisciplineScore)
	return nil
}

type JournalShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}
	e, ok := ctx.Journal.Get(date)
	if !ok {
		fmt.Fprintf(ctx.Out, "No journal entry for %s\n", date)
		return nil
	}
	fmt.Fprintf(ctx.Out, "%s  discipline %d/10  (written %s)\n\n", e.Date, e.DisciplineScore,
		humanize.Time(time.UnixMilli(e.Timestamp)))
	fmt.Fprintln(ctx.Out, e.Content)
	return nil
}

type JournalListCmd struct {
	Limit int `short:"n" help:"Show at most this many entries (0 for all)." default:"10"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	entries := ctx.Journal.List()
	if len(entries) == 0 {
		fmt.Fprintln(ctx.Out, "No journal entries found")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.AddRow("DATE", "SCORE", "WRITTEN", "ENTRY")
	for _, e := range entries {
		tbl.AddRow(e.Date, fmt.Sprintf("%d/10", e.DisciplineScore),
			humanize.Time(time.UnixMilli(e.Timestamp)), firstLine(e.Content))
	}
	fmt.Fprintln(ctx.Out, tbl)

	s := ctx.Journal.Stats(timeNow())
	fmt.Fprintf(ctx.Out, "\n%s entries, average discipline %.1f, streak %d days\n",
		humanize.Comma(int64(s.TotalEntries)), s.AverageScore, s.Streak)
	return nil
}

type JournalDeleteCmd struct {
	Date string `arg:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Journal.Delete(context.Background(), date); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted journal entry for %s\n", date)
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
