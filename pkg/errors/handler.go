// Package errors counts failures across the bot and shuts it down when a
// burst of them arrives faster than the reset window can clear.
package errors

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/goccy/go-json"
)

const (
	defaultMaxErrors     = 15
	defaultResetInterval = 5 * time.Second
	defaultCheckInterval = time.Second
)

// ErrorHandler keeps a rolling error count. More than maxErrors inside one
// reset window runs shutdownFunc and exits the process.
type ErrorHandler struct {
	errorCount int32
	maxErrors  int32

	resetInterval time.Duration
	checkInterval time.Duration

	webhookURL   string
	http         *http.Client
	shutdownFunc func()
	exit         func(code int)

	stopOnce sync.Once
	stopChan chan struct{}
}

var (
	handler *ErrorHandler
	once    sync.Once
)

// Init initializes the global error handler
func Init(webhookURL string, shutdownFunc func()) *ErrorHandler {
	once.Do(func() {
		handler = NewErrorHandler(webhookURL, shutdownFunc)
	})
	return handler
}

// Get returns the global error handler instance
func Get() *ErrorHandler {
	return handler
}

// NewErrorHandler creates a handler and starts its watch loop.
func NewErrorHandler(webhookURL string, shutdownFunc func()) *ErrorHandler {
	h := &ErrorHandler{
		maxErrors:     defaultMaxErrors,
		resetInterval: defaultResetInterval,
		checkInterval: defaultCheckInterval,
		webhookURL:    webhookURL,
		http:          &http.Client{Timeout: 10 * time.Second},
		shutdownFunc:  shutdownFunc,
		exit:          os.Exit,
		stopChan:      make(chan struct{}),
	}
	go h.watch()
	return h
}

func (h *ErrorHandler) watch() {
	reset := time.NewTicker(h.resetInterval)
	check := time.NewTicker(h.checkInterval)
	defer reset.Stop()
	defer check.Stop()

	for {
		select {
		case <-reset.C:
			atomic.StoreInt32(&h.errorCount, 0)
		case <-check.C:
			if h.tripped() {
				h.shutdown()
				return
			}
		case <-h.stopChan:
			return
		}
	}
}

func (h *ErrorHandler) tripped() bool {
	return atomic.LoadInt32(&h.errorCount) > h.maxErrors
}

func (h *ErrorHandler) shutdown() {
	start := time.Now()
	logger.Warn(fmt.Sprintf("%d errores en menos de %v. Apagando...", h.ErrorCount(), h.resetInterval), "CRITICAL")

	h.Report("Critical Error", "Número inusual de errores. Apagando...")
	if h.shutdownFunc != nil {
		h.shutdownFunc()
	}

	logger.Warn(fmt.Sprintf("Finalizando proceso... Tiempo total: %v", time.Since(start)), "CRITICAL")
	h.exit(1)
}

// Stop ends the watch loop. Safe to call more than once.
func (h *ErrorHandler) Stop() {
	h.stopOnce.Do(func() { close(h.stopChan) })
}

// IncrementError increments the error count
func (h *ErrorHandler) IncrementError() {
	n := atomic.AddInt32(&h.errorCount, 1)
	logger.Error(fmt.Sprintf("Error count: %d", n), "AntiCrash")
}

// ErrorCount returns the number of errors in the current window
func (h *ErrorHandler) ErrorCount() int32 {
	return atomic.LoadInt32(&h.errorCount)
}

// Track counts err against the global handler, if one is running
func Track(err error) {
	if err == nil || handler == nil {
		return
	}
	handler.IncrementError()
}

// HandlePanic counts a recovered panic and logs its value.
func (h *ErrorHandler) HandlePanic(recovered interface{}) {
	h.IncrementError()
	logger.Error(fmt.Sprintf("Panic recuperado: %v", recovered), "AntiCrash")
}

// Report posts an error embed to the webhook. Without a webhook it does
// nothing.
func (h *ErrorHandler) Report(title, message string) {
	if h.webhookURL == "" {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"embeds": []interface{}{reportEmbed(title, message, time.Now())},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to marshal error report: %v", err), "AntiCrash")
		return
	}

	resp, err := h.http.Post(h.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send error report: %v", err), "AntiCrash")
		return
	}
	resp.Body.Close()
	logger.Warn(fmt.Sprintf("Sent ErrorReport to Webhook, Status: %d", resp.StatusCode), "AntiCrash")
}

func reportEmbed(title, message string, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"author":      map[string]string{"name": "Error " + title},
		"description": message,
		"color":       0xFF0000,
		"footer":      map[string]string{"text": "PancyCalendar Go"},
		"timestamp":   at.Format(time.RFC3339),
	}
}

// RecoverMiddleware returns a recovery function for use in deferred calls
func RecoverMiddleware() func() {
	return func() {
		r := recover()
		if r == nil {
			return
		}
		if handler == nil {
			logger.Error(fmt.Sprintf("Panic recovered (no handler): %v", r), "AntiCrash")
			return
		}
		handler.HandlePanic(r)
	}
}
