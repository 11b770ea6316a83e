package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskcal/internal/debuglog"
)

// debugLog is the process-wide TUI logger. A nil *debuglog.File drops
// every event.
var debugLog *debuglog.File

// InitDebugLogger opens the debug log when enabled.
func InitDebugLogger(enabled bool) error {
	l, err := debuglog.Open(debuglog.DefaultPath, enabled)
	if err != nil {
		return err
	}
	debugLog = l
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	_ = debugLog.Close()
	debugLog = nil
}

// logger returns the debug logger as a debuglog.Logger, never a typed nil.
func logger() debuglog.Logger {
	if debugLog == nil {
		return debuglog.Nop{}
	}
	return debugLog
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	logger().Log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%d", msg.Type),
	})
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	logger().Log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"action": fmt.Sprintf("%d", msg.Action),
		"button": fmt.Sprintf("%d", msg.Button),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	logger().Log("MODE_CHANGE", map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})
}

// LogError logs an error with context.
func LogError(context string, err error) {
	debuglog.Error(logger(), context, err)
}
