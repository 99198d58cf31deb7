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

// Package serializer provides encoding and decoding of snapshot data in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between collection data structures and
// various output formats including JSON, YAML, and human-readable tables. It supports
// both encoding (writing data) and decoding (reading data) operations with automatic
// format detection, plus small HTTP helpers for serving and fetching data.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal/console viewing
//   - Read-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err := w.Serialize(ctx, doc); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "snapshot.json")
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	if err := w.Serialize(ctx, doc); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from a file with automatic format detection:
//
//	cfg, err := serializer.FromFile[Config]("/opt/custom/cmon-agent.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read from a custom io.Reader:
//
//	r, err := serializer.NewReader(serializer.FormatJSON, strings.NewReader(payload))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var doc map[string]any
//	if err := r.Deserialize(&doc); err != nil {
//	    log.Fatal(err)
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// Format detection is automatic when using NewFileReaderAuto(path) and
// FromFile[T](path).
//
// # HTTP
//
// RespondJSON writes a JSON response, buffering the encoding before any
// headers so a marshaling failure never produces a half-written body.
// HttpReader fetches data over HTTP with pooled connections and bounded
// timeouts; the agent uses it to scrape metrics endpoints inside core
// zones.
//
// # Resource Management
//
// Always close serializers and readers that manage files:
//
//	r, err := serializer.NewFileReaderAuto("snapshot.json")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// Stdout writers don't require closing but Close() is safe to call.
//
// # Integration
//
// Used throughout the agent for data I/O:
//   - pkg/cli - Snapshot command output formatting
//   - pkg/server - HTTP response encoding and agent configuration loading
//   - pkg/collector - Core zone metrics scraping
package serializer
