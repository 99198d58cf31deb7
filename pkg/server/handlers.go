package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"

	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
	"github.com/richardkiene/triton-cmon-agent/pkg/serializer"
	"github.com/richardkiene/triton-cmon-agent/pkg/snapshotter"
)

// notFoundBody is the exact body cmon pollers expect for unknown zones.
// Do not change it: the upstream proxy string-matches this response.
const notFoundBody = "container not found"

var expositionType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

// Handler implementations

// handleGZMetrics handles GET /v1/gz/metrics
func (s *Server) handleGZMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Collect(r.Context(), snapshotter.Request{GZ: true})
	if err != nil {
		WriteErrorFromErr(w, r, err, "global zone collection failed", nil)
		return
	}

	s.writeExposition(w, r, snap.GZ.Samples)
}

// handleVMMetrics handles GET /v1/{uuid}/metrics
func (s *Server) handleVMMetrics(w http.ResponseWriter, r *http.Request) {
	vmUUID := r.PathValue("uuid")
	if _, err := uuid.Parse(vmUUID); err != nil {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"malformed zone uuid", false, map[string]any{"uuid": vmUUID})
		return
	}

	opts, err := parseMetricsOptions(r.Header.Get("X-Metrics-Options"))
	if err != nil {
		WriteErrorFromErr(w, r, err, "malformed X-Metrics-Options header", nil)
		return
	}

	req := snapshotter.Request{VMs: []string{vmUUID}}
	if opts != nil {
		req.Options = map[string]snapshotter.Options{vmUUID: *opts}
	}

	snap, err := s.engine.Collect(r.Context(), req)
	if err != nil {
		WriteErrorFromErr(w, r, err, "zone collection failed", map[string]any{"uuid": vmUUID})
		return
	}

	vm := snap.VMs[vmUUID]
	if vm.Err != nil {
		if errors.IsCode(vm.Err, errors.ErrCodeNotFound) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundBody)
			return
		}
		WriteErrorFromErr(w, r, vm.Err, "zone collection failed", map[string]any{"uuid": vmUUID})
		return
	}

	s.writeExposition(w, r, vm.Samples)
}

// handleRefresh handles POST /v1/refresh. Older pollers issue a refresh
// before scraping to rebuild cached zone state; the agent reads zone state
// fresh on every pass, so this is a compatibility no-op.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	slog.Debug("refresh requested", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
}

// handleSnapshot handles GET /v1/snapshot. Without query parameters it dumps
// the full host: the global zone plus every running guest. The gz and vms
// parameters narrow the scope (vms takes "all" or a comma-separated UUID
// list).
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := parseSnapshotScope(r)
	if err != nil {
		WriteErrorFromErr(w, r, err, "malformed snapshot scope", nil)
		return
	}

	snap, err := s.engine.Collect(r.Context(), req)
	if err != nil {
		WriteErrorFromErr(w, r, err, "snapshot collection failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, snap.Document())
}

// Helper methods

// writeExposition renders samples in the Prometheus text exposition format.
// The body is buffered so a render failure can still produce an error
// response instead of a truncated 200.
func (s *Server) writeExposition(w http.ResponseWriter, r *http.Request, samples []metric.Sample) {
	var buf bytes.Buffer
	if err := metric.Format(&buf, samples); err != nil {
		WriteErrorFromErr(w, r, err, "cannot render metrics", nil)
		return
	}

	w.Header().Set("Content-Type", expositionType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// parseMetricsOptions decodes the X-Metrics-Options request header: base64
// wrapping a JSON object like {"isCoreZone":true,"metricPorts":[8881]}.
// An absent header yields nil options.
func parseMetricsOptions(header string) (*snapshotter.Options, error) {
	if header == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			"options header is not valid base64", err)
	}

	var opts snapshotter.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			"options header is not valid JSON", err)
	}

	return &opts, nil
}

// parseSnapshotScope builds a collection request from snapshot query
// parameters.
func parseSnapshotScope(r *http.Request) (snapshotter.Request, error) {
	q := r.URL.Query()

	var req snapshotter.Request
	if len(q) == 0 {
		req.GZ = true
		req.AllVMs = true
		return req, nil
	}

	req.GZ = q.Get("gz") == "true"

	switch vms := q.Get("vms"); vms {
	case "":
	case "all":
		req.AllVMs = true
	default:
		for _, vmUUID := range strings.Split(vms, ",") {
			vmUUID = strings.TrimSpace(vmUUID)
			if _, err := uuid.Parse(vmUUID); err != nil {
				return snapshotter.Request{}, errors.WrapWithContext(
					errors.ErrCodeInvalidRequest, "malformed zone uuid in vms parameter",
					err, map[string]any{"uuid": vmUUID})
			}
			req.VMs = append(req.VMs, vmUUID)
		}
	}

	return req, nil
}
