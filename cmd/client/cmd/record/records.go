package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
	"recordbook/internal/app/client"
	"recordbook/internal/domain/record"
)

// RecordCmd groups every record operation of the current session.
var RecordCmd = &cobra.Command{
	Use:     "record",
	Aliases: []string{"r"},
	Short:   "Work with the records of the current session",
}

// notFound turns a missing record into a notice instead of a failure.
func notFound(env *types.Env, err error) error {
	if errors.Is(err, client.ErrRecordNotFound) {
		env.Printer.Notice("record does not exist")
		return nil
	}
	return err
}

func parseID(raw string) (record.ID, error) {
	id, err := record.ParseID(raw)
	if err != nil {
		return "", fmt.Errorf("bad record id %q: %w", raw, err)
	}
	return id, nil
}

// parseDate accepts RFC 3339, a plain date, or epoch milliseconds.
func parseDate(s string) (int64, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli(), nil
		}
	}
	var ms int64
	if _, err := fmt.Sscan(s, &ms); err == nil && ms > 0 {
		return ms, nil
	}
	return 0, fmt.Errorf("cannot read date %q, use YYYY-MM-DD or RFC 3339", s)
}
