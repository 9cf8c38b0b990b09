package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/chaigney/golftrip/internal/auth"
	"github.com/chaigney/golftrip/internal/config"
	"github.com/chaigney/golftrip/internal/courses"
	"github.com/chaigney/golftrip/internal/editstate"
	"github.com/chaigney/golftrip/internal/email"
	"github.com/chaigney/golftrip/internal/export"
	"github.com/chaigney/golftrip/internal/metrics"
	"github.com/chaigney/golftrip/internal/models"
	"github.com/chaigney/golftrip/internal/scoring"
	"github.com/chaigney/golftrip/internal/store"
)

type Handler struct {
	store   store.Store
	edits   *editstate.Tracker
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
	mail    *email.Sender
	cfg     config.Config
}

func New(s store.Store, edits *editstate.Tracker, c clock.Clock, logger *slog.Logger, m *metrics.Metrics, mail *email.Sender, cfg config.Config) *Handler {
	return &Handler{
		store:   s,
		edits:   edits,
		clock:   c,
		logger:  logger,
		metrics: m,
		mail:    mail,
		cfg:     cfg,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/courses", h.ListCourses)
	mux.HandleFunc("GET /api/modes", h.ListModes)

	mux.HandleFunc("GET /api/trips", h.ListTrips)
	mux.HandleFunc("POST /api/trips", h.CreateTrip)
	mux.HandleFunc("GET /api/trips/{id}", h.GetTrip)
	mux.HandleFunc("PUT /api/trips/{id}", h.UpdateTrip)
	mux.HandleFunc("DELETE /api/trips/{id}", h.DeleteTrip)

	mux.HandleFunc("POST /api/trips/{id}/players", h.AddPlayer)
	mux.HandleFunc("PUT /api/trips/{id}/players/{playerId}", h.RenamePlayer)
	mux.HandleFunc("DELETE /api/trips/{id}/players/{playerId}", h.DeletePlayer)

	mux.HandleFunc("POST /api/trips/{id}/teams", h.CreateTeam)
	mux.HandleFunc("PUT /api/trips/{id}/teams/{teamId}", h.UpdateTeam)
	mux.HandleFunc("DELETE /api/trips/{id}/teams/{teamId}", h.DeleteTeam)

	mux.HandleFunc("POST /api/trips/{id}/matches", h.CreateMatch)
	mux.HandleFunc("PUT /api/trips/{id}/matches/{matchId}", h.UpdateMatch)
	mux.HandleFunc("DELETE /api/trips/{id}/matches/{matchId}", h.DeleteMatch)
	mux.HandleFunc("GET /api/trips/{id}/matches/{matchId}/scorecard", h.GetScorecard)

	mux.HandleFunc("PUT /api/trips/{id}/course", h.SelectCourse)
	mux.HandleFunc("PUT /api/trips/{id}/scores", h.SetScore)

	mux.HandleFunc("POST /api/trips/{id}/matches/{matchId}/archive", h.ArchiveMatch)
	mux.HandleFunc("POST /api/trips/{id}/archives/{archiveId}/restore", h.RestoreArchive)
	mux.HandleFunc("DELETE /api/trips/{id}/archives/{archiveId}", h.DeleteArchive)
	mux.HandleFunc("GET /api/trips/{id}/archives/{archiveId}/scorecard", h.GetArchiveScorecard)
	mux.HandleFunc("GET /api/trips/{id}/archives/{archiveId}/export", h.ExportArchive)
	mux.HandleFunc("GET /api/trips/{id}/records", h.GetRecords)

	mux.HandleFunc("PUT /api/trips/{id}/pin", h.SetPin)
	mux.HandleFunc("POST /api/trips/{id}/unlock", h.Unlock)
	mux.HandleFunc("POST /api/trips/{id}/invite", h.Invite)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// loadTrip fetches a trip, enforces room access and overlays any score edits
// still waiting to flush. Every read path goes through here.
func (h *Handler) loadTrip(w http.ResponseWriter, r *http.Request) (*models.Trip, bool) {
	id := r.PathValue("id")
	trip, err := h.store.GetTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return nil, false
	}
	if !auth.CanAccess(r.Context(), trip) {
		writeError(w, http.StatusForbidden, "room is locked")
		return nil, false
	}
	h.edits.Overlay(id, trip)
	return trip, true
}

// mutateTrip runs a guarded read-modify-write: access is checked against the
// stored document before fn may touch it.
func (h *Handler) mutateTrip(w http.ResponseWriter, r *http.Request, fn func(*models.Trip) error) (*models.Trip, bool) {
	id := r.PathValue("id")
	trip, err := h.store.MutateTrip(r.Context(), id, func(t *models.Trip) error {
		if !auth.CanAccess(r.Context(), t) {
			return errLocked
		}
		if err := fn(t); err != nil {
			return err
		}
		t.UpdatedAt = h.clock.Now()
		return nil
	})
	if err != nil {
		h.storeError(w, err)
		return nil, false
	}
	h.edits.Overlay(id, trip)
	return trip, true
}

var errLocked = errors.New("room is locked")

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errLocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, courses.All())
}

func (h *Handler) ListModes(w http.ResponseWriter, r *http.Request) {
	type modeInfo struct {
		Key   models.Mode `json:"key"`
		Label string      `json:"label"`
	}
	out := make([]modeInfo, 0, len(models.Modes()))
	for _, m := range models.Modes() {
		out = append(out, modeInfo{Key: m, Label: m.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.store.ListTrips(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	type tripSummary struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Players   int    `json:"players"`
		Matches   int    `json:"matches"`
		PinLocked bool   `json:"pinLocked"`
	}
	out := make([]tripSummary, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripSummary{
			ID:        t.ID,
			Name:      t.Name,
			Players:   len(t.Players),
			Matches:   len(t.Matches),
			PinLocked: t.PinEnabled,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type CreateTripRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	now := h.clock.Now()
	trip := &models.Trip{
		ID:            uuid.New().String(),
		Name:          req.Name,
		CourseKey:     courses.DefaultKey,
		OwnerDeviceID: auth.Device(r.Context()),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	trip.Normalize()

	if err := h.store.CreateTrip(r.Context(), trip); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type UpdateTripRequest struct {
	Name string `json:"name"`
}

func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if req.Name != "" {
			t.Name = req.Name
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	trip, err := h.store.GetTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if trip.PinEnabled && !auth.IsOwner(r.Context(), trip) {
		writeError(w, http.StatusForbidden, "only the owner can delete a locked trip")
		return
	}
	if err := h.store.DeleteTrip(r.Context(), id); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type PlayerRequest struct {
	Name string `json:"name"`
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	player := models.Player{ID: models.PlayerID(uuid.New().String()), Name: req.Name}
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		t.Players = append(t.Players, player)
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *Handler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := models.PlayerID(r.PathValue("playerId"))
	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		player := t.Player(playerID)
		if player == nil {
			return badRequestf("player %s not found", playerID)
		}
		player.Name = req.Name
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := models.PlayerID(r.PathValue("playerId"))
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if !t.RemovePlayer(playerID) {
			return badRequestf("player %s not found", playerID)
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type TeamRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	team := models.Team{ID: models.TeamID(uuid.New().String()), Name: req.Name}
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		t.Teams = append(t.Teams, team)
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

type UpdateTeamRequest struct {
	Name     string `json:"name,omitempty"`
	Assign   *Slot  `json:"assign,omitempty"`
	Unassign *int   `json:"unassign,omitempty"`
}

type Slot struct {
	Slot     int             `json:"slot"`
	PlayerID models.PlayerID `json:"playerId"`
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID := models.TeamID(r.PathValue("teamId"))
	var req UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		team := t.Team(teamID)
		if team == nil {
			return badRequestf("team %s not found", teamID)
		}
		if req.Name != "" {
			team.Name = req.Name
		}
		if req.Assign != nil {
			if req.Assign.Slot < 0 || req.Assign.Slot > 1 {
				return badRequestf("slot must be 0 or 1")
			}
			if req.Assign.PlayerID != "" && t.Player(req.Assign.PlayerID) == nil {
				return badRequestf("player %s not found", req.Assign.PlayerID)
			}
			t.AssignPlayer(teamID, req.Assign.Slot, req.Assign.PlayerID)
		}
		if req.Unassign != nil {
			if *req.Unassign < 0 || *req.Unassign > 1 {
				return badRequestf("slot must be 0 or 1")
			}
			t.AssignPlayer(teamID, *req.Unassign, "")
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID := models.TeamID(r.PathValue("teamId"))
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		idx := -1
		for i := range t.Teams {
			if t.Teams[i].ID == teamID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return badRequestf("team %s not found", teamID)
		}
		t.Teams = append(t.Teams[:idx], t.Teams[idx+1:]...)
		// Matches referencing the team stay; they render as awaiting team
		// selection until re-pointed or deleted.
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type MatchRequest struct {
	TeamAID models.TeamID `json:"teamAId"`
	TeamBID models.TeamID `json:"teamBId"`
	Mode    string        `json:"mode"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode := models.ParseMode(req.Mode)
	if !mode.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
		return
	}

	match := models.Match{ID: uuid.New().String(), TeamAID: req.TeamAID, TeamBID: req.TeamBID, Mode: mode}
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		t.Matches = append(t.Matches, match)
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("matchId")
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		match := t.Match(matchID)
		if match == nil {
			return badRequestf("match %s not found", matchID)
		}
		if req.TeamAID != "" {
			match.TeamAID = req.TeamAID
		}
		if req.TeamBID != "" {
			match.TeamBID = req.TeamBID
		}
		if req.Mode != "" {
			mode := models.ParseMode(req.Mode)
			if !mode.Valid() {
				return badRequestf("unknown mode %q", req.Mode)
			}
			match.Mode = mode
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("matchId")
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if !t.RemoveMatch(matchID) {
			return badRequestf("match %s not found", matchID)
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	match := trip.Match(r.PathValue("matchId"))
	if match == nil {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	course := courses.Lookup(trip.CourseKey)
	card := scoring.ComputeMatch(trip, *match, trip.CourseKey, course.ParOf)
	writeJSON(w, http.StatusOK, card)
}

type SelectCourseRequest struct {
	CourseKey string `json:"courseKey"`
}

func (h *Handler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	var req SelectCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !courses.Known(req.CourseKey) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown course %q", req.CourseKey))
		return
	}

	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		// Score rows are keyed per course, so switching never destroys data.
		t.CourseKey = req.CourseKey
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type SetScoreRequest struct {
	PlayerID models.PlayerID `json:"playerId"`
	Hole     int             `json:"hole"`
	Strokes  json.RawMessage `json:"strokes"`
}

// SetScore records one cell edit. The write is debounced: the response
// reflects the edit immediately via overlay while the store write coalesces
// with the rest of the typing burst.
func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req SetScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Hole < 0 || req.Hole >= models.Holes {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("hole must be 0..%d", models.Holes-1))
		return
	}

	trip, err := h.store.GetTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !auth.CanAccess(r.Context(), trip) {
		writeError(w, http.StatusForbidden, "room is locked")
		return
	}
	if trip.Player(req.PlayerID) == nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("player %s not found", req.PlayerID))
		return
	}

	var entry models.ScoreEntry
	if len(req.Strokes) > 0 {
		_ = json.Unmarshal(req.Strokes, &entry)
	}

	h.edits.Record(id, editstate.Edit{
		CourseKey: trip.CourseKey,
		Player:    req.PlayerID,
		Hole:      req.Hole,
		Entry:     entry,
	})
	h.metrics.ScoreUpdates.Inc()

	h.edits.Overlay(id, trip)
	writeJSON(w, http.StatusOK, trip)
}

type ArchiveRequest struct {
	Label string `json:"label"`
}

func (h *Handler) ArchiveMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("matchId")
	var req ArchiveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	// Pending score edits must land in the snapshot.
	if err := h.edits.Flush(r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	archiveID := uuid.New().String()
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if _, err := t.ArchiveMatch(matchID, archiveID, req.Label, h.clock.Now()); err != nil {
			return badRequestf("%s", err)
		}
		return nil
	})
	if !ok {
		return
	}
	h.metrics.Archives.Inc()
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) RestoreArchive(w http.ResponseWriter, r *http.Request) {
	archiveID := r.PathValue("archiveId")
	matchID := uuid.New().String()
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if _, err := t.RestoreArchive(archiveID, matchID); err != nil {
			return badRequestf("%s", err)
		}
		return nil
	})
	if !ok {
		return
	}
	h.metrics.Restores.Inc()
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) DeleteArchive(w http.ResponseWriter, r *http.Request) {
	archiveID := r.PathValue("archiveId")
	trip, ok := h.mutateTrip(w, r, func(t *models.Trip) error {
		if !t.RemoveArchive(archiveID) {
			return badRequestf("archive %s not found", archiveID)
		}
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handler) GetArchiveScorecard(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	arch := trip.Archive(r.PathValue("archiveId"))
	if arch == nil {
		writeError(w, http.StatusNotFound, "archive not found")
		return
	}
	course := courses.Lookup(arch.CourseKey)
	card := scoring.ComputeArchive(*arch, course.ParOf)
	writeJSON(w, http.StatusOK, card)
}

// ExportArchive streams an archive in the requested format: json (default),
// csv or html.
func (h *Handler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	arch := trip.Archive(r.PathValue("archiveId"))
	if arch == nil {
		writeError(w, http.StatusNotFound, "archive not found")
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", arch.ID+".csv"))
		if err := export.WriteCSV(w, *arch); err != nil {
			h.logger.Error("csv export", "error", err)
		}
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := export.WriteHTML(w, *arch); err != nil {
			h.logger.Error("html export", "error", err)
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteJSON(w, *arch); err != nil {
			h.logger.Error("json export", "error", err)
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
	}
}

func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	records := scoring.Records(trip.History, func(courseKey string) scoring.ParLookup {
		return courses.Lookup(courseKey).ParOf
	})
	writeJSON(w, http.StatusOK, records)
}

type SetPinRequest struct {
	Pin string `json:"pin"`
}

// SetPin enables or clears the room PIN. Only the owning device may change
// it; an empty pin disables the lock.
func (h *Handler) SetPin(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req SetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.store.MutateTrip(r.Context(), id, func(t *models.Trip) error {
		if t.OwnerDeviceID != "" && !auth.IsOwner(r.Context(), t) {
			return errLocked
		}
		if req.Pin == "" {
			t.PinEnabled = false
			t.PinHash = ""
			return nil
		}
		hash, err := auth.HashPin(req.Pin)
		if err != nil {
			return badRequestf("%s", err)
		}
		t.PinEnabled = true
		t.PinHash = hash
		if t.OwnerDeviceID == "" {
			t.OwnerDeviceID = auth.Device(r.Context())
		}
		t.UpdatedAt = h.clock.Now()
		return nil
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type UnlockRequest struct {
	Pin string `json:"pin"`
}

type UnlockResponse struct {
	Token string `json:"token"`
}

// Unlock verifies the PIN and issues a room token for the calling device.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.store.GetTrip(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !trip.PinEnabled {
		writeError(w, http.StatusBadRequest, "room is not locked")
		return
	}
	if !auth.CheckPin(trip.PinHash, req.Pin) {
		writeError(w, http.StatusForbidden, "wrong pin")
		return
	}

	token, err := auth.GenerateRoomToken(trip.ID, auth.Device(r.Context()), h.cfg.RoomSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, UnlockResponse{Token: token})
}

type InviteRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	if !h.mail.IsConfigured() {
		writeError(w, http.StatusServiceUnavailable, "email not configured")
		return
	}
	if err := h.mail.SendInvite(req.Email, trip.Name, trip.ID, h.cfg.AppURL); err != nil {
		h.logger.Error("invite email", "error", err, "trip", trip.ID)
		writeError(w, http.StatusInternalServerError, "failed to send invite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
