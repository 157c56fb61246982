package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type VoteHandler struct {
	votes  ports.VoteService
	voters ports.VoterService
	logger *slog.Logger
}

func NewVoteHandler(votes ports.VoteService, voters ports.VoterService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		votes:  votes,
		voters: voters,
		logger: logger,
	}
}

type castVoteRequest struct {
	NationalID string `json:"national_id"`
}

// LookupVoter lets a president check a voter before casting.
func (h *VoteHandler) LookupVoter(w http.ResponseWriter, r *http.Request) {
	if _, err := scopedStation(r); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	voter, err := h.voters.FindByNationalID(r.Context(), chi.URLParam(r, "nationalID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, voter)
}

// Cast records a vote at the station the caller's token is scoped to.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	stationID, err := scopedStation(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req castVoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.NationalID == "" {
		respondError(w, r, h.logger, domain.ErrMissingField)
		return
	}

	vote, err := h.votes.CastVote(r.Context(), ports.CastVoteInput{
		NationalID: req.NationalID,
		StationID:  stationID,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}
