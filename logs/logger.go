package logs

import (
	"log/slog"
	"os"

	"github.com/HishamYahya/gollm/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

func init() {
	cmds.Define("-log-debug", cmds.Func(func() {
		level.Set(slog.LevelDebug)
	}).Desc("set log level to debug"))
	cmds.Define("-log-warn", cmds.Func(func() {
		level.Set(slog.LevelWarn)
	}).Desc("set log level to warn"))
	cmds.Define("-log-error", cmds.Func(func() {
		level.Set(slog.LevelError)
	}).Desc("set log level to error"))
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
) Logger {
	handlers := []slog.Handler{
		slog.NewTextHandler(
			writer,
			&slog.HandlerOptions{
				Level: level,
			},
		),
	}

	// forward to the journal when launched under systemd
	if os.Getenv("JOURNAL_STREAM") != "" {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err == nil {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	ret := make([]byte, 0, len(str))
	for _, r := range str {
		switch {
		case r >= 'a' && r <= 'z':
			ret = append(ret, byte(r-'a'+'A'))
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			ret = append(ret, byte(r))
		default:
			ret = append(ret, '_')
		}
	}
	return string(ret)
}
