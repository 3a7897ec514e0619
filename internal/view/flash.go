package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashData holds the one-shot messages queued for the next rendered page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.Warn("Flash session unavailable", "error", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash message", "error", err)
	}
}

// SetFlashSuccess queues a success message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError queues an error message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData returns and clears the queued messages.
func GetFlashData(c echo.Context) FlashData {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return FlashData{}
	}

	data := FlashData{
		Success: toStrings(sess.Flashes(flashKeySuccess)),
		Error:   toStrings(sess.Flashes(flashKeyError)),
	}
	// Flashes() only clears in memory; saving persists the removal.
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
