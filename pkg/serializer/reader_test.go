// Copyright (c) 2026, Joyent, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDocUUID = "b8c34577-3101-4796-85f4-a6de57f9e31b"

type testDoc struct {
	UUID     string `json:"uuid" yaml:"uuid"`
	Instance int    `json:"instance" yaml:"instance"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"snapshot.json", FormatJSON},
		{"snapshot.JSON", FormatJSON},
		{"config.yaml", FormatYAML},
		{"config.yml", FormatYAML},
		{"config.YML", FormatYAML},
		{"/etc/cmon-agent/config.yaml", FormatYAML},
		{"snapshot.txt", FormatTable},
		{"snapshot.table", FormatTable},
		{"snapshot", FormatJSON},
		{"", FormatJSON},
		{".yaml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	input := strings.NewReader(`{"uuid":"` + testDocUUID + `"}`)

	reader, err := NewReader(FormatJSON, input)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if reader == nil {
		t.Fatal("Expected non-nil reader")
	}
}

func TestNewReader_TableUnsupported(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	if err == nil {
		t.Error("Expected error for table format reader")
	}
}

func TestReader_DeserializeJSON(t *testing.T) {
	input := `{"uuid":"` + testDocUUID + `","instance":14}`

	reader, err := NewReader(FormatJSON, strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var doc testDoc
	if err := reader.Deserialize(&doc); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if doc.UUID != testDocUUID || doc.Instance != 14 {
		t.Errorf("Unexpected data: %+v", doc)
	}
}

func TestReader_DeserializeYAML(t *testing.T) {
	input := "uuid: " + testDocUUID + "\ninstance: 14\n"

	reader, err := NewReader(FormatYAML, strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var doc testDoc
	if err := reader.Deserialize(&doc); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if doc.UUID != testDocUUID || doc.Instance != 14 {
		t.Errorf("Unexpected data: %+v", doc)
	}
}

func TestReader_DeserializeNilTarget(t *testing.T) {
	reader, err := NewReader(FormatJSON, strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	if err := reader.Deserialize(nil); err == nil {
		t.Error("Expected error for nil target")
	}
}

func TestReader_DeserializeInvalidJSON(t *testing.T) {
	reader, err := NewReader(FormatJSON, strings.NewReader(`{not json`))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var doc testDoc
	if err := reader.Deserialize(&doc); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestNewFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	content := `{"uuid":"` + testDocUUID + `","instance":14}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	reader, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	var doc testDoc
	if err := reader.Deserialize(&doc); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if doc.UUID != testDocUUID {
		t.Errorf("Unexpected data: %+v", doc)
	}
}

func TestNewFileReader_MissingFile(t *testing.T) {
	_, err := NewFileReader(FormatJSON, "/nonexistent/doc.json")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewFileReaderAuto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	content := "uuid: " + testDocUUID + "\ninstance: 14\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	reader, err := NewFileReaderAuto(path)
	if err != nil {
		t.Fatalf("NewFileReaderAuto failed: %v", err)
	}
	defer reader.Close()

	var doc testDoc
	if err := reader.Deserialize(&doc); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if doc.Instance != 14 {
		t.Errorf("Unexpected data: %+v", doc)
	}
}

func TestReader_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	reader, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}

	if err := reader.Close(); err != nil {
		t.Errorf("First Close failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	formats := []Format{FormatJSON, FormatYAML}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			original := testDoc{UUID: testDocUUID, Instance: 14}

			var buf bytes.Buffer
			writer := NewWriter(format, &buf)
			if err := writer.Serialize(context.Background(), original); err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			reader, err := NewReader(format, &buf)
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			var restored testDoc
			if err := reader.Deserialize(&restored); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}

			if restored != original {
				t.Errorf("Round trip mismatch: got %+v, want %+v", restored, original)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "uuid: " + testDocUUID + "\ninstance: 14\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	doc, err := FromFile[testDoc](path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	if doc.UUID != testDocUUID || doc.Instance != 14 {
		t.Errorf("Unexpected data: %+v", doc)
	}
}

func TestFromFile_EmptyPath(t *testing.T) {
	if _, err := FromFile[testDoc](""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestFromFile_MissingFile(t *testing.T) {
	if _, err := FromFile[testDoc]("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	reader, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	var doc testDoc
	if err := reader.Deserialize(&doc); err == nil {
		t.Error("Expected error deserializing empty file")
	}
}
