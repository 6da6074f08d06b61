package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errNoSnapshot = errors.New("no snapshot available yet")

// Snapshot serves the full latest refresh cycle output
func (s *Server) Snapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.source.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, errNoSnapshot)

		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// Ranking serves the latest cost-adjusted shortlist and cycle statistics
func (s *Server) Ranking(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.source.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, errNoSnapshot)

		return
	}

	resp := &RankingResponse{
		CycleID:         snapshot.CycleID,
		Top5:            snapshot.Ranking.Top5,
		AveragePrice:    snapshot.Ranking.AveragePrice,
		ReferencePrice:  snapshot.Ranking.ReferencePrice,
		SlippageWarning: snapshot.Ranking.SlippageWarning,
	}

	writeJSON(w, http.StatusOK, resp)
}

// Quotes serves every venue quote from the latest cycle
func (s *Server) Quotes(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.source.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, errNoSnapshot)

		return
	}

	resp := &QuotesResponse{
		CycleID: snapshot.CycleID,
		Results: snapshot.Ranking.Quotes,
	}

	writeJSON(w, http.StatusOK, resp)
}

// P2P serves the collected peer-to-peer offers from the latest cycle
func (s *Server) P2P(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.source.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, errNoSnapshot)

		return
	}

	resp := &P2PResponse{
		CycleID: snapshot.CycleID,
		Best:    snapshot.Ranking.BestP2P,
		Results: snapshot.Offers,
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
