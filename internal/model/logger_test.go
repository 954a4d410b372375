package model

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
)

func TestDiscardLoggerWorksAsIntended(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("foo")
	logger.Debugf("%s", "foo")
	logger.Info("foo")
	logger.Infof("%s", "foo")
	logger.Warn("foo")
	logger.Warnf("%s", "foo")
}

func TestValidLoggerOrDefault(t *testing.T) {
	t.Run("with nil logger", func(t *testing.T) {
		if ValidLoggerOrDefault(nil) != DiscardLogger {
			t.Fatal("expected DiscardLogger")
		}
	})

	t.Run("with an apex/log logger", func(t *testing.T) {
		handler := memory.New()
		var logger Logger = &log.Logger{Handler: handler, Level: log.DebugLevel}
		ValidLoggerOrDefault(logger).Warnf("%d runs without data", 3)
		if len(handler.Entries) != 1 {
			t.Fatal("expected one entry")
		}
		if handler.Entries[0].Message != "3 runs without data" {
			t.Fatal("unexpected message", handler.Entries[0].Message)
		}
	})
}
