package syslog

import (
	"log/slog"
	"testing"
)

func TestHandlerFormatsRecords(t *testing.T) {
	l := newTestLogger(8, WithTimestamps(false))
	logger := slog.New(NewHandler(l, nil))

	logger.Info("attached", "port", 0)
	logger.Warn("retry", slog.Group("pd", "n", 3))
	logger.Debug("hidden")
	logger.Error("fault")

	got := texts(l.Store().Entries())
	want := []string{"I attached port=0", "W retry pd.n=3", "E fault"}
	if !equal(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHandlerLevel(t *testing.T) {
	l := newTestLogger(8, WithTimestamps(false))
	logger := slog.New(NewHandler(l, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("probe")

	if e, _ := l.Store().At(0); e.Text != "D probe" {
		t.Errorf("Expected %q, got %q", "D probe", e.Text)
	}
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	l := newTestLogger(8, WithTimestamps(false))
	logger := slog.New(NewHandler(l, nil)).With("dev", "tcpc").WithGroup("cc")

	logger.Info("status", "a", 1, "b", 2)

	if e, _ := l.Store().At(0); e.Text != "I status dev=tcpc cc.a=1 cc.b=2" {
		t.Errorf("Unexpected entry %q", e.Text)
	}
}
