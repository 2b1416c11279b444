package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beetlebot/cheepnow/internal/adapters/mock"
	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/beetlebot/cheepnow/internal/logging"
	"github.com/beetlebot/cheepnow/internal/metrics"
	"github.com/beetlebot/cheepnow/internal/session"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	Searcher       *core.Searcher
	Catalog        *mock.Catalog
	Sessions       *session.Store
	Metrics        *metrics.Registry
	HistoryDisplay int
	UpSince        time.Time
}

type Handlers struct {
	deps Dependencies
}

func NewHandlers(deps Dependencies) *Handlers {
	if deps.HistoryDisplay <= 0 {
		deps.HistoryDisplay = 3
	}
	return &Handlers{deps: deps}
}

type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Sessions      int    `json:"sessions"`
}

type SessionView struct {
	ID             string              `json:"id"`
	CreatedAt      time.Time           `json:"createdAt"`
	RecentSearches []core.HistoryEntry `json:"recentSearches"`
	ActiveLocks    []core.LockStatus   `json:"activeLocks"`
	Preferences    core.Preferences    `json:"preferences"`
	HasResults     bool                `json:"hasResults"`
}

type LockRequest struct {
	FlightID string `json:"flightId"`
}

type ReferenceData struct {
	Airports []*core.Airport `json:"airports,omitempty"`
	Airlines []*core.Airline `json:"airlines,omitempty"`
	Routes   []mock.Route    `json:"routes,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, &HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.deps.UpSince).Seconds()),
		Sessions:      h.deps.Sessions.Count(),
	})
}

func (h *Handlers) Airports(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, &ReferenceData{Airports: h.deps.Catalog.Airports()})
}

func (h *Handlers) Airlines(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, &ReferenceData{Airlines: h.deps.Catalog.Airlines()})
}

func (h *Handlers) PopularRoutes(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, &ReferenceData{Routes: h.deps.Catalog.PopularRoutes()})
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.deps.Sessions.Create()
	logging.WithSession(sess.ID, RequestIDFrom(r.Context())).Infow("session created")
	respondWithSuccess(w, http.StatusCreated, h.view(sess))
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondWithSuccess(w, http.StatusOK, h.view(sess))
}

func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !h.deps.Sessions.Delete(id) {
		respondWithError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var prefs core.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid preferences body")
		return
	}
	if prefs.MaxBudget < 0 {
		respondWithError(w, http.StatusBadRequest, "maxBudget must not be negative")
		return
	}
	sess.SetPreferences(prefs)

	p := sess.Preferences()
	respondWithSuccess(w, http.StatusOK, &p)
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	log := logging.WithSession(sess.ID, RequestIDFrom(r.Context()))

	var req core.FlightSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid search body")
		return
	}

	result, err := h.deps.Searcher.Search(r.Context(), sess, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidRequest) {
			h.deps.Metrics.ObserveSearch("rejected", nil)
			log.Infow("search rejected", "from", req.From, "to", req.To, "error", err.Error())
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.deps.Metrics.ObserveSearch("error", nil)
		log.Errorw("search failed", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, "search failed")
		return
	}

	scores := make([]float64, len(result.Flights))
	for i, f := range result.Flights {
		scores[i] = f.ValueScore
	}
	h.deps.Metrics.ObserveSearch("ok", scores)
	log.Infow("search completed", "route", result.Route, "date", req.DepartDate, "flights", len(result.Flights))

	respondWithSuccess(w, http.StatusOK, result)
}

func (h *Handlers) LastResult(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	result, ok := sess.LastResult()
	if !ok {
		respondWithError(w, http.StatusNotFound, core.ErrNoResults.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, result)
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	limit := h.deps.HistoryDisplay
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	history := sess.RecentSearches(limit)
	respondWithSuccess(w, http.StatusOK, &history)
}

func (h *Handlers) ListLocks(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	locks := sess.Locks.Active()
	respondWithSuccess(w, http.StatusOK, &locks)
}

func (h *Handlers) LockFlight(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlightID == "" {
		respondWithError(w, http.StatusBadRequest, "flightId is required")
		return
	}

	lock, err := sess.LockFlight(req.FlightID)
	if err != nil {
		if errors.Is(err, core.ErrFlightNotFound) || errors.Is(err, core.ErrNoResults) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to lock price")
		return
	}
	h.deps.Metrics.PriceLocksTotal.WithLabelValues("lock").Inc()
	logging.WithSession(sess.ID, RequestIDFrom(r.Context())).Infow("price locked",
		"flight_id", lock.FlightID,
		"price", lock.OriginalPrice,
		"locked_until", lock.LockedUntil,
	)

	status := sess.Locks.Status(lock.FlightID)
	respondWithSuccess(w, http.StatusCreated, &status)
}

// LockStatus never fails for unknown flights; they report as unlocked.
func (h *Handlers) LockStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	status := sess.Locks.Status(chi.URLParam(r, "flightID"))
	respondWithSuccess(w, http.StatusOK, &status)
}

func (h *Handlers) ReleaseLock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	flightID := chi.URLParam(r, "flightID")
	if !sess.Locks.Release(flightID) {
		respondWithError(w, http.StatusNotFound, "price lock not found")
		return
	}
	h.deps.Metrics.PriceLocksTotal.WithLabelValues("release").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*core.Session, bool) {
	sess, ok := h.deps.Sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (h *Handlers) view(sess *core.Session) *SessionView {
	active := sess.Locks.Active()
	statuses := make([]core.LockStatus, 0, len(active))
	for _, l := range active {
		statuses = append(statuses, sess.Locks.Status(l.FlightID))
	}
	_, hasResults := sess.LastResult()

	return &SessionView{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		RecentSearches: sess.RecentSearches(h.deps.HistoryDisplay),
		ActiveLocks:    statuses,
		Preferences:    sess.Preferences(),
		HasResults:     hasResults,
	}
}
