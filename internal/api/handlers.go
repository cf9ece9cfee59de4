package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vrpls/internal/broker"
	"vrpls/internal/engine"
	"vrpls/internal/heuristic"
	"vrpls/internal/metrics"
	"vrpls/internal/store"
)

// OptimizeHandler runs POST /v1/optimize synchronously: parses the
// request, builds a model.Input, seeds and searches a solution, and
// returns indicators + routes. Grounded on the ancestor's
// OptimizeHandler, replacing its ALNS call with engine.LocalSearch.
func (s *Server) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeProblem(w, http.StatusMethodNotAllowed, "method not allowed", "", r.URL.Path)
		return
	}
	pr := s.getPrincipal(r)
	if !s.limiterFor(pr.Tenant).Allow() {
		writeProblem(w, http.StatusTooManyRequests, "rate limit exceeded", "too many optimize requests for this tenant", r.URL.Path)
		return
	}

	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid request body", err.Error(), r.URL.Path)
		return
	}
	req.Jobs = append(req.Jobs, s.takePending(pr.Tenant)...)
	if err := validateOptimizeRequest(&req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "invalid optimize request", err.Error(), r.URL.Path)
		return
	}

	in := buildInput(&req)

	regretCoeff := s.Cfg.RegretCoeff
	if req.RegretCoeff != nil {
		regretCoeff = *req.RegretCoeff
	}
	iterationCap := s.Cfg.IterationCap
	if req.IterationCap > 0 {
		iterationCap = req.IterationCap
	}

	runRec, err := s.Store.CreateRun(r.Context(), mustMarshal(req))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "failed to create run", err.Error(), r.URL.Path)
		return
	}

	rh := heuristic.Greedy{}
	sol := heuristic.SeedSolution(in, rh, regretCoeff)
	ls := engine.New(in, sol, rh)
	ls.MaxRounds = iterationCap

	round := 0
	ls.OnRoundApplied = func(family string, gain int64) {
		round++
		ind := ls.Indicators()
		metrics.RoundsTotal.Inc()
		metrics.OperatorApplied.WithLabelValues(family).Inc()
		metrics.RoundGain.Observe(float64(gain))
		metrics.SolutionCost.WithLabelValues(runRec.ID).Set(float64(ind.TotalCost))
		metrics.UnassignedCount.WithLabelValues(runRec.ID).Set(float64(ind.UnassignedCount))
		evt := broker.RoundEvent{
			RunID: runRec.ID, Round: round, Family: family, Gain: gain,
			TotalCost: ind.TotalCost, UnassignedCount: ind.UnassignedCount,
		}
		s.Broker.Publish(runRec.ID, evt)
		_ = s.Store.SaveRoundMetric(context.Background(), store.RoundMetric{
			RunID: runRec.ID, Round: round, Family: family, Gain: gain,
			TotalCost: ind.TotalCost, Unassigned: ind.UnassignedCount, AppliedAt: time.Now().UTC(),
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	ls.Run(ctx)

	ind := ls.Indicators()
	resp := OptimizeResponse{
		RunID:  runRec.ID,
		Status: "completed",
		Indicators: Indicators{
			UnassignedCount: ind.UnassignedCount,
			TotalCost:       ind.TotalCost,
			UsedVehicles:    ind.UsedVehicles,
		},
	}
	st := ls.State()
	for v, route := range ls.Solution().Routes {
		ids := make([]int, len(route.Jobs))
		for i, jobIdx := range route.Jobs {
			ids[i] = in.Jobs[jobIdx].ID
		}
		resp.Routes = append(resp.Routes, RouteDTO{VehicleID: in.Vehicles[v].ID, JobIDs: ids, Cost: st.RouteCosts[v]})
	}
	for jobIdx := range st.Unassigned {
		resp.Unassigned = append(resp.Unassigned, in.Jobs[jobIdx].ID)
	}

	s.Broker.Publish(runRec.ID, broker.RoundEvent{RunID: runRec.ID, Round: round, Done: true, TotalCost: ind.TotalCost, UnassignedCount: ind.UnassignedCount})

	if err := s.Store.SaveRunResult(r.Context(), runRec.ID, "completed", mustMarshal(resp), ""); err != nil {
		writeProblem(w, http.StatusInternalServerError, "failed to persist run result", err.Error(), r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RunByIDHandler handles GET /v1/runs/{id}.
func (s *Server) RunByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/runs/")
	id = strings.TrimSuffix(id, "/")
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "missing run id", "", r.URL.Path)
		return
	}
	if strings.HasSuffix(r.URL.Path, "/events/stream") {
		s.RunEventsStreamHandler(w, r, strings.TrimSuffix(id, "/events/stream"))
		return
	}
	run, err := s.Store.GetRun(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			writeProblem(w, http.StatusNotFound, "run not found", "", r.URL.Path)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "failed to load run", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ImportJobsHandler handles POST /v1/jobs/import: parses a CSV body
// into jobs queued for the tenant's next optimize call.
func (s *Server) ImportJobsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeProblem(w, http.StatusMethodNotAllowed, "method not allowed", "", r.URL.Path)
		return
	}
	pr := s.getPrincipal(r)
	recs, err := s.importer().FetchJobs(r.Body)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid CSV", err.Error(), r.URL.Path)
		return
	}
	jobs := make([]JobDTO, len(recs))
	for i, rec := range recs {
		jobs[i] = JobDTO{
			ID: rec.Job.ID, Lat: rec.Lat, Lng: rec.Lng, Amount: []float64(rec.Job.Amount),
			Skills: rec.Job.Skills, ServiceSec: rec.Job.ServiceSec,
		}
		for _, tw := range rec.Job.TimeWindows {
			jobs[i].TimeWindows = append(jobs[i].TimeWindows, TimeWindowDTO{Earliest: tw.Earliest, Latest: tw.Latest})
		}
	}
	s.queuePendingDTO(pr.Tenant, jobs)
	writeJSON(w, http.StatusAccepted, map[string]int{"queued": len(jobs)})
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}
