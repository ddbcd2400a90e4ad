package logs

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestLogger(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestToJournalKey(t *testing.T) {
	if k := toJournalKey("logs.span"); k != "LOGS_SPAN" {
		t.Fatalf("got %q", k)
	}
	if k := toJournalKey("model2"); k != "MODEL2" {
		t.Fatalf("got %q", k)
	}
}
