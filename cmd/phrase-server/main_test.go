package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/roundsnote/api/internal/domain/patient"
	"github.com/roundsnote/api/internal/domain/phrase"
)

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLibrary(t *testing.T) {
	path := writeLibrary(t, `{
		"phrases": [
			{"name": "Dyspnea note", "shortcut": ".sob", "content": "Patient reports {{severity}} dyspnea.",
			 "fields": [{"key": "severity", "label": "Severity", "type": "dropdown", "options": ["mild", "moderate", "severe"]}]}
		],
		"patients": [
			{"name": "Alex Smith", "mrn": "1234", "bed": "12A"}
		]
	}`)

	lib, err := loadLibrary(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Phrases) != 1 {
		t.Fatalf("expected 1 phrase, got %d", len(lib.Phrases))
	}
	if lib.Phrases[0].Shortcut != ".sob" {
		t.Errorf("expected shortcut .sob, got %s", lib.Phrases[0].Shortcut)
	}
	if len(lib.Phrases[0].Fields) != 1 || lib.Phrases[0].Fields[0].Type != phrase.FieldDropdown {
		t.Errorf("expected one dropdown field, got %+v", lib.Phrases[0].Fields)
	}
	if len(lib.Patients) != 1 || lib.Patients[0].Bed != "12A" {
		t.Errorf("expected one patient in bed 12A, got %+v", lib.Patients)
	}
}

func TestLoadLibrary_MissingFile(t *testing.T) {
	if _, err := loadLibrary("/nonexistent/library.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadLibrary_BadJSON(t *testing.T) {
	path := writeLibrary(t, `{"phrases": [`)
	if _, err := loadLibrary(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestPatientContextAdapter(t *testing.T) {
	repo := patient.NewMemoryRepository()
	rec := &patient.Record{
		Name: "Alex Smith",
		Labs: map[string]float64{"creatinine": 1.2},
	}
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	adapter := &patientContextAdapter{repo: repo}
	pc, err := adapter.ContextFor(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.Resolve("name") != "Alex Smith" {
		t.Errorf("expected name resolution, got %q", pc.Resolve("name"))
	}
	if pc.Resolve("labs.creatinine") != "1.2" {
		t.Errorf("expected lab resolution, got %q", pc.Resolve("labs.creatinine"))
	}
}

func TestPatientContextAdapter_NotFound(t *testing.T) {
	adapter := &patientContextAdapter{repo: patient.NewMemoryRepository()}
	if _, err := adapter.ContextFor(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown patient")
	}
}
