// audit_test.go - Audit trail tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestAuditLogger(t *testing.T) (*AuditLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	config := AuditConfig{
		Enabled:    true,
		OutputFile: path,
		MinLevel:   AuditInfo,
		BufferSize: 64,
		// No FlushInterval: tests flush explicitly.
	}
	logger, err := NewAuditLogger(config)
	if err != nil {
		t.Fatalf("failed to create audit logger: %v", err)
	}
	t.Cleanup(func() { _ = logger.Close() })
	return logger, path
}

func readAuditEvents(t *testing.T, path string) []AuditEvent {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open audit file: %v", err)
	}
	defer func() { _ = f.Close() }()

	var events []AuditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("malformed audit line %q: %v", scanner.Text(), err)
		}
		events = append(events, e)
	}
	return events
}

func TestAuditLogAndFlush(t *testing.T) {
	logger, path := newTestAuditLogger(t)

	logger.LogDispatch("remote add", 3)
	logger.LogHandlerError("build", os.ErrPermission)
	if err := logger.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	events := readAuditEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	dispatch := events[0]
	if dispatch.Event != "command_dispatch" || dispatch.CommandPath != "remote add" {
		t.Errorf("unexpected dispatch event: %+v", dispatch)
	}
	if dispatch.Component != "hermes" || dispatch.Outcome != "ok" {
		t.Errorf("unexpected dispatch metadata: %+v", dispatch)
	}
	if dispatch.Checksum == "" {
		t.Error("events must carry a checksum")
	}
	if dispatch.ProcessID != os.Getpid() {
		t.Errorf("process id = %d, want %d", dispatch.ProcessID, os.Getpid())
	}

	failure := events[1]
	if failure.Event != "handler_error" || failure.Level != AuditWarn {
		t.Errorf("unexpected handler error event: %+v", failure)
	}
}

func TestAuditLogDiagnostic(t *testing.T) {
	logger, path := newTestAuditLogger(t)

	logger.LogDiagnostic("deploy", &Diagnostic{Kind: KindOptionUnknown, Option: "frce"})
	if err := logger.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	events := readAuditEvents(t, path)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Code != ErrCodeOptionUnknown || events[0].Outcome != "rejected" {
		t.Errorf("unexpected diagnostic event: %+v", events[0])
	}
}

func TestAuditMinLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewAuditLogger(AuditConfig{
		Enabled:    true,
		OutputFile: path,
		MinLevel:   AuditCritical,
		BufferSize: 16,
	})
	if err != nil {
		t.Fatalf("failed to create audit logger: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.Log(AuditInfo, "ignored", "", "", "", nil)
	logger.Log(AuditWarn, "ignored", "", "", "", nil)
	logger.Log(AuditSecurity, "kept", "", "", "", nil)
	if err := logger.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	events := readAuditEvents(t, path)
	if len(events) != 1 || events[0].Event != "kept" {
		t.Errorf("min level filter broken: %+v", events)
	}
}

func TestAuditNilAndDisabledAreSafe(t *testing.T) {
	var nilLogger *AuditLogger
	nilLogger.LogDispatch("anything", 0) // must not panic
	nilLogger.Log(AuditSecurity, "e", "", "", "", nil)

	disabled, err := NewAuditLogger(AuditConfig{
		Enabled:    false,
		BufferSize: 16,
	})
	if err != nil {
		t.Fatalf("disabled config must still construct: %v", err)
	}
	disabled.LogDispatch("anything", 0)
	if err := disabled.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestAuditRejectsNonPositiveBuffer(t *testing.T) {
	_, err := NewAuditLogger(AuditConfig{Enabled: true, BufferSize: 0})
	if err == nil {
		t.Fatal("expected error for zero buffer size")
	}
	if !strings.Contains(err.Error(), ErrCodeInvalidAudit) {
		t.Errorf("expected %s, got %v", ErrCodeInvalidAudit, err)
	}
}

func TestAuditInlineFlushAtCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewAuditLogger(AuditConfig{
		Enabled:    true,
		OutputFile: path,
		BufferSize: 2,
	})
	if err != nil {
		t.Fatalf("failed to create audit logger: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogDispatch("one", 0)
	logger.LogDispatch("two", 0)

	// The second event reached the buffer cap, so both hit storage
	// without an explicit Flush.
	events := readAuditEvents(t, path)
	if len(events) != 2 {
		t.Errorf("expected inline flush at capacity, found %d events", len(events))
	}
}

func TestAuditBackgroundFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewAuditLogger(AuditConfig{
		Enabled:       true,
		OutputFile:    path,
		BufferSize:    64,
		FlushInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create audit logger: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogDispatch("bg", 0)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(readAuditEvents(t, path)) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("background flusher never wrote the event")
}

func TestAuditLevelString(t *testing.T) {
	cases := map[AuditLevel]string{
		AuditInfo:      "INFO",
		AuditWarn:      "WARN",
		AuditCritical:  "CRITICAL",
		AuditSecurity:  "SECURITY",
		AuditLevel(99): "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("AuditLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}
