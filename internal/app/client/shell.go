package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"recordbook/internal/domain/record"
)

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Shell is an offline session on an in-process book. Nothing leaves the
// process and nothing is kept after it exits.
type Shell struct {
	service record.Servicer
	book    *record.Book
	printer *Printer
	out     io.Writer
	prompt  bool
}

func NewShell(service record.Servicer, book *record.Book, printer *Printer, out io.Writer, prompt bool) *Shell {
	return &Shell{
		service: service,
		book:    book,
		printer: printer,
		out:     out,
		prompt:  prompt,
	}
}

const shellHelp = `Commands:
  list                       show all records
  search <text>              records whose content contains text
  get <id>                   show one record
  add <text>                 add a todo item
  add <emotion 1-5> <text>   add a diary page
  toggle <id>                flip a todo item
  edit <id> <text>           change a todo item
  edit <id> <emotion> <text> change a diary page
  delete <id>                remove a record
  stats                      book summary
  action <json>              dispatch a raw action
  help                       this text
  quit                       leave the shell
`

// Run reads commands from in until EOF, quit or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	if s.prompt {
		fmt.Fprintf(s.out, "%s, type help for commands\n", color.New(color.Bold).Sprint(s.book.Kind().DisplayName()))
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if s.prompt {
			fmt.Fprint(s.out, color.CyanString("%s> ", s.book.Kind()))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := s.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should stop.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "list", "ls":
		err = s.list(ctx, "")
	case "search", "find":
		err = s.list(ctx, rest)
	case "get", "show":
		err = s.get(ctx, rest)
	case "add", "new":
		err = s.add(ctx, rest)
	case "toggle", "done":
		err = s.withID(rest, func(id record.ID) error {
			res, err := s.service.Toggle(ctx, s.book, id)
			return s.printResult(res, id, err)
		})
	case "edit":
		err = s.edit(ctx, rest)
	case "delete", "rm":
		err = s.withID(rest, func(id record.ID) error {
			res, err := s.service.Delete(ctx, s.book, id)
			return s.printResult(res, "", err)
		})
	case "stats":
		var st record.StatsResponse
		if st, err = s.service.Stats(ctx, s.book); err == nil {
			err = s.printer.Stats(st)
		}
	case "action":
		err = s.action(ctx, rest)
	default:
		err = fmt.Errorf("unknown command %q, type help", cmd)
	}

	if err != nil {
		s.report(err)
	}
	return false
}

func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, record.ErrNotFound):
		s.printer.Notice("record does not exist")
	default:
		fmt.Fprintln(s.out, color.RedString("error: %v", err))
	}
}

func (s *Shell) list(ctx context.Context, query string) error {
	res, err := s.service.List(ctx, s.book, query)
	if err != nil {
		return err
	}
	return s.printer.Records(res)
}

func (s *Shell) get(ctx context.Context, arg string) error {
	return s.withID(arg, func(id record.ID) error {
		rec, err := s.service.Find(ctx, s.book, id)
		if err != nil {
			return err
		}
		return s.printer.Record(s.book.Kind(), record.ToItem(rec))
	})
}

func (s *Shell) add(ctx context.Context, arg string) error {
	draft := record.Draft{Content: arg}
	if s.book.Kind() == record.KindDiary {
		emotion, content, err := splitEmotion(arg)
		if err != nil {
			return err
		}
		draft = record.Draft{Content: content, Emotion: emotion}
	}

	rec, err := s.service.Create(ctx, s.book, draft)
	if err != nil {
		return err
	}
	item := record.ToItem(rec)
	return s.printer.Mutation(s.book.Kind(), record.MutationResponse{
		Action:   record.ActionCreate,
		Affected: 1,
		Total:    s.book.Len(),
		Record:   &item,
	})
}

func (s *Shell) edit(ctx context.Context, arg string) error {
	rawID, rest, _ := strings.Cut(arg, " ")
	rest = strings.TrimSpace(rest)

	return s.withID(rawID, func(id record.ID) error {
		var patch record.Patch
		if s.book.Kind() == record.KindDiary {
			emotion, content, err := splitEmotion(rest)
			if err != nil {
				return err
			}
			patch = record.Patch{Content: &content, Emotion: &emotion}
		} else {
			patch = record.Patch{Content: &rest}
		}

		res, err := s.service.Update(ctx, s.book, id, patch)
		return s.printResult(res, id, err)
	})
}

func (s *Shell) action(ctx context.Context, raw string) error {
	action, err := record.DecodeAction([]byte(raw))
	if err != nil {
		return err
	}
	res, err := s.service.Dispatch(ctx, s.book, action)
	return s.printResult(res, "", err)
}

func (s *Shell) withID(arg string, fn func(record.ID) error) error {
	if arg == "" {
		return errors.New("missing record id")
	}
	id, err := record.ParseID(arg)
	if err != nil {
		return err
	}
	return fn(id)
}

func (s *Shell) printResult(res record.Result, id record.ID, err error) error {
	if err != nil {
		return err
	}
	out := record.MutationResponse{
		Action:   res.Action,
		Affected: res.Affected,
		Total:    len(res.Records),
	}
	if id != "" {
		if rec, ok := record.Find(res.Records, id); ok {
			item := record.ToItem(rec)
			out.Record = &item
		}
	}
	return s.printer.Mutation(s.book.Kind(), out)
}

func splitEmotion(arg string) (record.Emotion, string, error) {
	first, rest, _ := strings.Cut(strings.TrimSpace(arg), " ")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, "", fmt.Errorf("diary entries start with an emotion %d-%d", record.EmotionMin, record.EmotionMax)
	}
	return record.Emotion(n), strings.TrimSpace(rest), nil
}
