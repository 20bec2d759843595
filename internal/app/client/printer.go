package client

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q, use text, table, json or yaml", s)
}

const dateLayout = "2006-01-02 15:04"

// Printer renders API results for a terminal or a pipe.
type Printer struct {
	out    io.Writer
	format Format

	id      *color.Color
	done    *color.Color
	pending *color.Color
	muted   *color.Color
}

func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{
		out:     out,
		format:  format,
		id:      color.New(color.FgCyan),
		done:    color.New(color.FgGreen),
		pending: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
	}
}

func (p *Printer) structured(v any) (bool, error) {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *Printer) Records(list record.ListResponse) error {
	if ok, err := p.structured(list); ok {
		return err
	}

	if len(list.Records) == 0 {
		if list.Query != "" {
			_, err := fmt.Fprintf(p.out, "No records match %q\n", list.Query)
			return err
		}
		_, err := fmt.Fprintln(p.out, "No records")
		return err
	}

	if p.format == FormatTable {
		return p.table(list.Kind, list.Records)
	}

	for _, item := range list.Records {
		p.line(list.Kind, item)
	}
	_, err := fmt.Fprintf(p.out, "\n%d record(s)\n", list.Total)
	return err
}

func (p *Printer) line(kind record.Kind, item record.Item) {
	date := record.FromMillis(item.Date).Local().Format(dateLayout)
	if kind == record.KindDiary {
		fmt.Fprintf(p.out, "%s %s %s %s\n",
			p.id.Sprintf("%-8s", item.ID),
			emotionBar(item.EmotionID),
			p.muted.Sprint(date),
			item.Content,
		)
		return
	}

	mark := p.pending.Sprint("[ ]")
	if item.IsDone {
		mark = p.done.Sprint("[x]")
	}
	fmt.Fprintf(p.out, "%s %s %s %s\n", mark, p.id.Sprintf("%-4s", item.ID), item.Content, p.muted.Sprintf("(%s)", date))
}

func (p *Printer) table(kind record.Kind, items []record.Item) error {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	if kind == record.KindDiary {
		fmt.Fprintln(w, "ID\tEMOTION\tDATE\tCONTENT")
	} else {
		fmt.Fprintln(w, "ID\tDONE\tCREATED\tCONTENT")
	}

	for _, item := range items {
		date := record.FromMillis(item.Date).Local().Format(dateLayout)
		second := fmt.Sprint(item.IsDone)
		if kind == record.KindDiary {
			second = fmt.Sprint(int(item.EmotionID))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, second, date, truncate(item.Content, 40))
	}
	return w.Flush()
}

func (p *Printer) Record(kind record.Kind, item record.Item) error {
	if ok, err := p.structured(item); ok {
		return err
	}

	fmt.Fprintf(p.out, "ID:      %s\n", p.id.Sprint(item.ID))
	fmt.Fprintf(p.out, "Content: %s\n", item.Content)
	if kind == record.KindDiary {
		fmt.Fprintf(p.out, "Emotion: %d %s\n", item.EmotionID, emotionBar(item.EmotionID))
	} else {
		fmt.Fprintf(p.out, "Done:    %v\n", item.IsDone)
	}
	_, err := fmt.Fprintf(p.out, "Date:    %s\n", record.FromMillis(item.Date).Local().Format(time.RFC1123))
	return err
}

func (p *Printer) Mutation(kind record.Kind, res record.MutationResponse) error {
	if ok, err := p.structured(res); ok {
		return err
	}

	if res.Affected == 0 {
		_, err := fmt.Fprintf(p.out, "%s: nothing changed, no such record\n", strings.ToLower(res.Action))
		return err
	}
	if res.Record != nil {
		p.line(kind, *res.Record)
	}
	_, err := fmt.Fprintf(p.out, "%s: %d record(s) affected, %d in book\n", strings.ToLower(res.Action), res.Affected, res.Total)
	return err
}

func (p *Printer) Stats(s record.StatsResponse) error {
	if ok, err := p.structured(s); ok {
		return err
	}

	fmt.Fprintf(p.out, "Book:    %s\n", s.Kind.DisplayName())
	fmt.Fprintf(p.out, "Total:   %d\n", s.Total)
	if s.Kind == record.KindTodo {
		fmt.Fprintf(p.out, "Done:    %s\n", p.done.Sprint(s.Done))
		fmt.Fprintf(p.out, "Pending: %s\n", p.pending.Sprint(s.Pending))
	}
	if len(s.ByEmotion) > 0 {
		keys := make([]string, 0, len(s.ByEmotion))
		for k := range s.ByEmotion {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(p.out, "Emotion %s: %d\n", k, s.ByEmotion[k])
		}
	}
	if s.Newest != nil {
		fmt.Fprintf(p.out, "Newest:  %s\n", s.Newest.Local().Format(dateLayout))
	}
	_, err := fmt.Fprintf(p.out, "Next id: %s\n", s.NextID)
	return err
}

func (p *Printer) Session(info session.Info) error {
	if ok, err := p.structured(info); ok {
		return err
	}

	fmt.Fprintf(p.out, "Session: %s\n", p.id.Sprint(info.SessionID))
	fmt.Fprintf(p.out, "Book:    %s, %d record(s), next id %s\n", info.Kind.DisplayName(), len(info.Records), info.NextID)
	_, err := fmt.Fprintf(p.out, "Expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	return err
}

// Notice prints a non-fatal message such as a missing record.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, p.pending.Sprint(msg))
}

func emotionBar(e record.Emotion) string {
	if e < record.EmotionMin || e > record.EmotionMax {
		return strings.Repeat("·", int(record.EmotionMax))
	}
	return strings.Repeat("●", int(e)) + strings.Repeat("·", int(record.EmotionMax-e))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
