// Package logger writes the bot's log lines to the console, to files under
// ./logs and, when configured, to Discord webhooks.
package logger

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

type levelStyle struct {
	name    string
	ansi    string
	discord int
	logrus  logrus.Level
}

// Indexed by LogLevel.
var levelStyles = [...]levelStyle{
	LevelCritical: {"CRITICAL", "\033[1;31m", 0xFF0000, logrus.FatalLevel},
	LevelError:    {"ERROR", "\033[31m", 0xFF0000, logrus.ErrorLevel},
	LevelWarn:     {"WARN", "\033[33m", 0xFFFF00, logrus.WarnLevel},
	LevelSuccess:  {"SUCCESS", "\033[32m", 0x00FF00, logrus.InfoLevel},
	LevelInfo:     {"INFO", "\033[36m", 0x0000FF, logrus.InfoLevel},
	LevelDebug:    {"DEBUG", "\033[35m", 0x800080, logrus.DebugLevel},
	LevelSystem:   {"SYSTEM", "\033[34m", 0x808080, logrus.TraceLevel},
}

var unknownStyle = levelStyle{"UNKNOWN", colorReset, 0xFFFFFF, logrus.InfoLevel}

const (
	colorReset  = "\033[0m"
	stampLayout = "2006-01-02 15:04:05"
	footerText  = "💫 Developed by PancyStudio | PancyCalendar Go"
)

func (l LogLevel) style() levelStyle {
	if l < 0 || int(l) >= len(levelStyles) {
		return unknownStyle
	}
	return levelStyles[l]
}

// String returns the string representation of the log level
func (l LogLevel) String() string { return l.style().name }

// Color returns the ANSI color code for the log level
func (l LogLevel) Color() string { return l.style().ansi }

// LogrusLevel maps the level onto the logrus level used for the file sink
func (l LogLevel) LogrusLevel() logrus.Level { return l.style().logrus }

// DiscordColor returns the Discord embed color for the log level
func (l LogLevel) DiscordColor() int { return l.style().discord }

// severe reports whether the level belongs in error.log and the error webhook.
func (l LogLevel) severe() bool { return l <= LevelError }

// Logger fans every line out to its sinks.
type Logger struct {
	mu        sync.Mutex
	combined  *logrus.Logger
	logFile   *os.File
	errorFile *os.File

	errorWebhook string
	logsWebhook  string
	http         *http.Client
}

var (
	logger *Logger
	once   sync.Once
)

// Init initializes the global logger instance
func Init(errorWebhook, logsWebhook string) *Logger {
	once.Do(func() {
		logger = NewLogger(errorWebhook, logsWebhook)
	})
	return logger
}

// Get returns the global logger, creating a webhook-less one if Init was
// never called.
func Get() *Logger {
	once.Do(func() {
		logger = NewLogger("", "")
	})
	return logger
}

// NewLogger opens ./logs/combined.log and ./logs/error.log. A sink that
// cannot be opened is skipped; combined output then goes to stderr.
func NewLogger(errorWebhook, logsWebhook string) *Logger {
	l := &Logger{
		combined:     logrus.New(),
		errorWebhook: errorWebhook,
		logsWebhook:  logsWebhook,
		http:         &http.Client{Timeout: 5 * time.Second},
	}
	l.combined.SetLevel(logrus.TraceLevel)
	l.combined.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: stampLayout,
		DisableColors:   true,
	})

	dir := filepath.Join(".", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "logger: no se pudo crear %s: %v\n", dir, err)
	}
	l.logFile = openSink(dir, "combined.log")
	l.errorFile = openSink(dir, "error.log")

	l.combined.SetOutput(os.Stderr)
	if l.logFile != nil {
		l.combined.SetOutput(l.logFile)
	}
	return l
}

func openSink(dir, name string) *os.File {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: no se pudo abrir %s: %v\n", name, err)
		return nil
	}
	return f
}

// formatLine renders "[stamp] [LEVEL] [prefix]: message". With color set
// the level name is wrapped in its ANSI code.
func formatLine(level LogLevel, prefix, message string, at time.Time, color bool) string {
	name := level.String()
	if color {
		name = level.Color() + name + colorReset
	}
	return fmt.Sprintf("[%s] [%s] [%s]: %s\n", at.Format(stampLayout), name, prefix, message)
}

func (l *Logger) log(level LogLevel, message, prefix string) {
	now := time.Now()

	l.mu.Lock()
	fmt.Print(formatLine(level, prefix, message, now, true))
	l.combined.WithField("prefix", prefix).Log(level.LogrusLevel(), message)
	if level.severe() && l.errorFile != nil {
		l.errorFile.WriteString(formatLine(level, prefix, message, now, false))
	}
	l.mu.Unlock()

	if url := l.webhookFor(level); url != "" {
		go l.post(url, webhookEmbed(level, prefix, message, now))
	}
}

// webhookFor picks the error webhook for severe levels and the logs
// webhook for the rest. Empty means the line stays local.
func (l *Logger) webhookFor(level LogLevel) string {
	if level.severe() {
		return l.errorWebhook
	}
	return l.logsWebhook
}

func webhookEmbed(level LogLevel, prefix, message string, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":       fmt.Sprintf("[%s] %s", level, prefix),
		"description": "```" + message + "```",
		"color":       level.DiscordColor(),
		"timestamp":   at.Format(time.RFC3339),
		"footer":      map[string]string{"text": footerText},
	}
}

func (l *Logger) post(url string, embed map[string]interface{}) {
	body, err := json.Marshal(map[string]interface{}{"embeds": []interface{}{embed}})
	if err != nil {
		return
	}
	resp, err := l.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close closes the log files
func (l *Logger) Close() {
	for _, f := range []*os.File{l.logFile, l.errorFile} {
		if f != nil {
			f.Close()
		}
	}
}

func (l *Logger) Critical(message, prefix string) { l.log(LevelCritical, message, prefix) }
func (l *Logger) Error(message, prefix string)    { l.log(LevelError, message, prefix) }
func (l *Logger) Warn(message, prefix string)     { l.log(LevelWarn, message, prefix) }
func (l *Logger) Success(message, prefix string)  { l.log(LevelSuccess, message, prefix) }
func (l *Logger) Info(message, prefix string)     { l.log(LevelInfo, message, prefix) }
func (l *Logger) Debug(message, prefix string)    { l.log(LevelDebug, message, prefix) }
func (l *Logger) System(message, prefix string)   { l.log(LevelSystem, message, prefix) }

// Package-level shortcuts on the global logger.

func Critical(message, prefix string) { Get().Critical(message, prefix) }
func Error(message, prefix string)    { Get().Error(message, prefix) }
func Warn(message, prefix string)     { Get().Warn(message, prefix) }
func Success(message, prefix string)  { Get().Success(message, prefix) }
func Info(message, prefix string)     { Get().Info(message, prefix) }
func Debug(message, prefix string)    { Get().Debug(message, prefix) }
func System(message, prefix string)   { Get().System(message, prefix) }
