/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"chainguard.dev/casecrew/agents/metaagent"
	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/artifact"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/chainguard-dev/clog"
)

// ArtifactList is the JSON listing of a run's artifacts.
type ArtifactList struct {
	RunID     string         `json:"run_id"`
	Artifacts []present.View `json:"artifacts"`
}

// ErrorResponse is the JSON body of API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	cfg := s.svc.Config()
	names := slices.Clone(casestudy.Models)
	if cfg.Model != "" && !slices.Contains(names, cfg.Model) {
		names = append([]string{cfg.Model}, names...)
	}
	selected := cfg.Model
	if selected == "" {
		selected = casestudy.DefaultModel
	}

	// A key for one provider does not make the others' models runnable.
	models := make([]modelOption, 0, len(names))
	canRun := false
	for _, name := range names {
		ok := cfg.CanGenerate(name)
		models = append(models, modelOption{Name: name, Available: ok})
		canRun = canRun || ok
	}
	if !cfg.CanGenerate(selected) {
		for _, m := range models {
			if m.Available {
				selected = m.Name
				break
			}
		}
	}

	s.render(r.Context(), w, http.StatusOK, formTemplate, formPage{
		About:      casestudy.About,
		Models:     models,
		Selected:   selected,
		CanRun:     canRun,
		CanSearch:  cfg.Research.HasSearch(),
		Stages:     s.svc.Definitions(),
		RunTimeout: s.runTimeout,
	})
}

// handleCreateRun runs the pipeline synchronously.
//
//	@Summary		Run the pipeline
//	@Description	Runs research, frame, review and solve over the submitted case study, then redirects to the run page.
//	@Tags			runs
//	@Accept			x-www-form-urlencoded
//	@Param			case_study_details	formData	string	false	"Case study details"
//	@Param			context				formData	string	false	"Context for the case study"
//	@Param			model				formData	string	false	"Generation model"
//	@Success		303
//	@Failure		400	{string}	string	"Unsupported model"
//	@Failure		503	{string}	string	"No credentials for the model"
//	@Router			/runs [post]
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	root := pipeline.RootInputs{
		CaseStudyDetails: r.PostFormValue("case_study_details"),
		Context:          r.PostFormValue("context"),
	}
	model := r.PostFormValue("model")
	if model != "" {
		if _, err := metaagent.ProviderFor(model); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if !s.svc.Config().CanGenerate(model) {
		http.Error(w, "no API key is configured for the selected model", http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The run outlives a client that stops waiting.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.runTimeout)
	defer cancel()

	log := clog.FromContext(ctx)
	run, err := s.svc.Run(ctx, root, model)
	if run == nil {
		log.With("error", err).Error("Failed to start run")
		http.Error(w, "failed to start run", http.StatusInternalServerError)
		return
	}

	// The run page reads the outcome back from the journal.
	http.Redirect(w, r, "/runs/"+url.PathEscape(run.ID), http.StatusSeeOther)
}

func (s *Server) handleShowRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runID := r.PathValue("id")
	adapter, ok := s.adapter(w, r, runID)
	if !ok {
		return
	}
	views, err := adapter.RenderAll(ctx)
	if err != nil {
		clog.FromContext(ctx).With("run_id", runID).With("error", err).Error("Failed to render run")
		http.Error(w, "failed to read artifacts", http.StatusInternalServerError)
		return
	}

	page := runPage{RunID: runID}
	rec, err := s.svc.RunStatus(ctx, runID)
	switch {
	case errors.Is(err, pipeline.ErrRunNotFound):
		// Artifacts without a journal entry render with no status.
	case err != nil:
		clog.FromContext(ctx).With("run_id", runID).With("error", err).Error("Failed to read run status")
		http.Error(w, "failed to read run status", http.StatusInternalServerError)
		return
	default:
		page.Status = rec.Status
		if rec.Status == pipeline.StatusFailed {
			page.Failed, page.FailedStage, page.Error = true, rec.FailedStage, rec.Error
		}
	}
	for _, v := range views {
		if v.Persisted {
			page.Outputs = append(page.Outputs, v)
			if v.Pending() {
				page.Missing = true
			}
		} else {
			page.Intermediate = append(page.Intermediate, v)
		}
	}
	s.render(ctx, w, http.StatusOK, runTemplate, page)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adapter, ok := s.adapter(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	v, err := adapter.Render(ctx, r.PathValue("stage"))
	switch {
	case errors.Is(err, present.ErrUnknownStage):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		clog.FromContext(ctx).With("error", err).Error("Failed to render artifact")
		http.Error(w, "failed to read artifact", http.StatusInternalServerError)
		return
	}
	s.render(ctx, w, http.StatusOK, artifactTemplate, viewData{RunID: r.PathValue("id"), View: v})
}

// handleDownload serves one artifact as a text file.
//
//	@Summary	Download an artifact
//	@Tags		artifacts
//	@Produce	plain
//	@Param		id		path		string	true	"Run ID"
//	@Param		stage	path		string	true	"Stage name"
//	@Success	200		{string}	string	"Artifact text"
//	@Failure	404		{string}	string	"Stage unknown or artifact not produced"
//	@Router		/runs/{id}/artifacts/{stage}/download [get]
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adapter, ok := s.adapter(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	d, err := adapter.Export(ctx, r.PathValue("stage"))
	switch {
	case errors.Is(err, present.ErrUnknownStage), errors.Is(err, artifact.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		clog.FromContext(ctx).With("error", err).Error("Failed to export artifact")
		http.Error(w, "failed to read artifact", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	_, _ = w.Write(d.Data)
}

// handleListArtifacts lists every stage's artifact in pipeline order.
//
//	@Summary	List a run's artifacts
//	@Tags		artifacts
//	@Produce	json
//	@Param		id	path		string	true	"Run ID"
//	@Success	200	{object}	ArtifactList
//	@Failure	400	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/v1/runs/{id}/artifacts [get]
func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runID := r.PathValue("id")
	adapter, err := s.svc.Adapter(ctx, runID)
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	views, err := adapter.RenderAll(ctx)
	if err != nil {
		clog.FromContext(ctx).With("run_id", runID).With("error", err).Error("Failed to list artifacts")
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "failed to read artifacts"})
		return
	}
	writeJSON(ctx, w, http.StatusOK, ArtifactList{RunID: runID, Artifacts: views})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) adapter(w http.ResponseWriter, r *http.Request, runID string) (*present.Adapter, bool) {
	adapter, err := s.svc.Adapter(r.Context(), runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return adapter, true
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		clog.FromContext(ctx).With("error", err).Warn("Failed to write response")
	}
}
