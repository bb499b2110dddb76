// audit.go: Dispatch audit trail for Hermes
//
// Records command dispatches, routing failures and parse rejections so
// operators can reconstruct who ran what and what was refused. Events
// are buffered and flushed in the background; each event carries a
// tamper-detection checksum. Storage is pluggable (JSONL or SQLite, see
// audit_backend.go). The trail is optional: a nil *AuditLogger disables
// every call site.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// AuditLevel represents the severity of audit events.
type AuditLevel int

const (
	AuditInfo AuditLevel = iota
	AuditWarn
	AuditCritical
	AuditSecurity
)

func (al AuditLevel) String() string {
	switch al {
	case AuditInfo:
		return "INFO"
	case AuditWarn:
		return "WARN"
	case AuditCritical:
		return "CRITICAL"
	case AuditSecurity:
		return "SECURITY"
	default:
		return "UNKNOWN"
	}
}

// AuditEvent is a single auditable dispatch-pipeline event.
type AuditEvent struct {
	Timestamp   time.Time              `json:"timestamp"`
	Level       AuditLevel             `json:"level"`
	Event       string                 `json:"event"`
	Component   string                 `json:"component"`
	CommandPath string                 `json:"command_path,omitempty"`
	Outcome     string                 `json:"outcome,omitempty"`
	Code        string                 `json:"code,omitempty"`
	ProcessID   int                    `json:"process_id"`
	ProcessName string                 `json:"process_name"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Checksum    string                 `json:"checksum"` // For tamper detection
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	Enabled       bool          `json:"enabled"`
	OutputFile    string        `json:"output_file"`
	MinLevel      AuditLevel    `json:"min_level"`
	BufferSize    int           `json:"buffer_size"`
	FlushInterval time.Duration `json:"flush_interval"`
}

// DefaultAuditConfig returns the default audit configuration: enabled,
// SQLite storage in the user cache directory, five second flushes.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:       true,
		OutputFile:    "", // Empty selects the default SQLite database
		MinLevel:      AuditInfo,
		BufferSize:    256,
		FlushInterval: 5 * time.Second,
	}
}

// AuditLogger provides buffered audit logging with pluggable backends.
//
// Log never blocks on storage: events are buffered under a short mutex
// and flushed by a background goroutine; oversized buffers flush inline.
type AuditLogger struct {
	config      AuditConfig
	backend     auditBackend
	buffer      []AuditEvent
	bufferMu    sync.Mutex
	flushTicker *time.Ticker
	stopCh      chan struct{}
	processID   int
	processName string
}

// NewAuditLogger creates an audit logger with automatic backend
// selection: JSONL for .jsonl paths, SQLite otherwise, with a JSONL
// fallback when SQLite initialization fails.
func NewAuditLogger(config AuditConfig) (*AuditLogger, error) {
	if config.BufferSize <= 0 {
		return nil, errors.New(ErrCodeInvalidAudit, "audit buffer size must be positive").
			WithContext("buffer_size", config.BufferSize)
	}

	backend, err := createAuditBackend(config)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidAudit, "failed to initialize audit backend")
	}

	logger := &AuditLogger{
		config:      config,
		backend:     backend,
		buffer:      make([]AuditEvent, 0, config.BufferSize),
		stopCh:      make(chan struct{}),
		processID:   os.Getpid(),
		processName: processName(),
	}

	if config.FlushInterval > 0 {
		logger.flushTicker = time.NewTicker(config.FlushInterval)
		go logger.flushLoop()
	}
	return logger, nil
}

// Log records an audit event. Nil receivers and disabled or filtered
// configurations are silently ignored so call sites stay unconditional.
func (al *AuditLogger) Log(level AuditLevel, event, commandPath, outcome, code string, context map[string]interface{}) {
	if al == nil || al.backend == nil || !al.config.Enabled || level < al.config.MinLevel {
		return
	}

	auditEvent := AuditEvent{
		Timestamp:   timecache.CachedTime(),
		Level:       level,
		Event:       event,
		Component:   "hermes",
		CommandPath: commandPath,
		Outcome:     outcome,
		Code:        code,
		ProcessID:   al.processID,
		ProcessName: al.processName,
		Context:     context,
	}
	auditEvent.Checksum = al.checksum(auditEvent)

	al.bufferMu.Lock()
	al.buffer = append(al.buffer, auditEvent)
	if len(al.buffer) >= al.config.BufferSize {
		_ = al.flushLocked()
	}
	al.bufferMu.Unlock()
}

// LogDispatch records a successful command dispatch.
func (al *AuditLogger) LogDispatch(commandPath string, argCount int) {
	al.Log(AuditInfo, "command_dispatch", commandPath, "ok", "",
		map[string]interface{}{"arg_count": argCount})
}

// LogHandlerError records a handler that returned an error.
func (al *AuditLogger) LogHandlerError(commandPath string, err error) {
	al.Log(AuditWarn, "handler_error", commandPath, "error", "",
		map[string]interface{}{"error": err.Error()})
}

// LogDiagnostic records a parse or routing rejection.
func (al *AuditLogger) LogDiagnostic(commandPath string, d *Diagnostic) {
	al.Log(AuditWarn, "diagnostic", commandPath, "rejected", d.Code(), nil)
}

// Flush immediately writes all buffered events.
func (al *AuditLogger) Flush() error {
	al.bufferMu.Lock()
	defer al.bufferMu.Unlock()
	return al.flushLocked()
}

// Close gracefully shuts down the audit logger, flushing pending events
// and releasing the backend.
func (al *AuditLogger) Close() error {
	close(al.stopCh)
	if al.flushTicker != nil {
		al.flushTicker.Stop()
	}
	if err := al.Flush(); err != nil {
		return fmt.Errorf("failed to flush audit logger during close: %w", err)
	}
	if al.backend != nil {
		if err := al.backend.Close(); err != nil {
			return fmt.Errorf("failed to close audit backend: %w", err)
		}
	}
	return nil
}

func (al *AuditLogger) flushLoop() {
	for {
		select {
		case <-al.flushTicker.C:
			_ = al.Flush() // Ignore background flush errors to keep dispatch latency flat
		case <-al.stopCh:
			return
		}
	}
}

// flushLocked writes the buffer to the backend. Caller holds bufferMu.
func (al *AuditLogger) flushLocked() error {
	if len(al.buffer) == 0 {
		return nil
	}
	if err := al.backend.Write(al.buffer); err != nil {
		return err
	}
	al.buffer = al.buffer[:0]
	return al.backend.Flush()
}

// checksum produces the tamper-detection digest over the event's
// identifying fields.
func (al *AuditLogger) checksum(e AuditEvent) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s|%d",
		e.Timestamp.UnixNano(), e.Level, e.Event, e.CommandPath, e.Outcome, e.ProcessID)
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}

func processName() string {
	exe, err := os.Executable()
	if err != nil {
		return "unknown"
	}
	return filepath.Base(exe)
}
