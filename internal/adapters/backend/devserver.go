package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

// Fixtures seed the dev backend
type Fixtures struct {
	Listings  []ListingDTO            `yaml:"listings"`
	Users     []UserDTO               `yaml:"users"`
	Positions map[string][]ProductDTO `yaml:"positions"` // keyed by holder address
	History   map[string][]HistoryDTO `yaml:"history"`   // keyed by user address
}

// LoadFixtures reads a fixtures YAML file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return &f, nil
}

// DevServer is an in-memory implementation of the listing backend API for
// local development against a test chain.
type DevServer struct {
	log *slog.Logger

	mu        sync.RWMutex
	listings  map[string]ListingDTO
	users     map[common.Address]UserDTO
	positions map[common.Address][]ProductDTO
	history   map[common.Address][]HistoryDTO
}

// NewDevServer creates a dev backend seeded with fixtures, which may be nil
func NewDevServer(fixtures *Fixtures, log *slog.Logger) *DevServer {
	s := &DevServer{
		log:       log.With("component", "devserver"),
		listings:  make(map[string]ListingDTO),
		users:     make(map[common.Address]UserDTO),
		positions: make(map[common.Address][]ProductDTO),
		history:   make(map[common.Address][]HistoryDTO),
	}
	if fixtures == nil {
		return s
	}

	for _, l := range fixtures.Listings {
		s.listings[l.ListingID] = l
	}
	for _, u := range fixtures.Users {
		s.users[common.HexToAddress(u.Address)] = u
	}
	for addr, products := range fixtures.Positions {
		s.positions[common.HexToAddress(addr)] = products
	}
	for addr, entries := range fixtures.History {
		s.history[common.HexToAddress(addr)] = entries
	}
	return s
}

// Router returns the HTTP handler of the dev backend
func (s *DevServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Get("/positions/{address}", s.handlePositions)
		r.Get("/history/{address}", s.handleHistory)
		r.Get("/{address}", s.handleUser)
	})

	r.Route("/marketplace", func(r chi.Router) {
		r.Get("/listing/{listingId}", s.handleGetListing)
		r.Put("/listing/{listingId}", s.handlePutListing)
		r.Get("/listed-items/{address}", s.handleListedItems)
	})

	return r
}

func (s *DevServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *DevServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *DevServer) handleUser(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	s.mu.RLock()
	user, found := s.users[addr]
	s.mu.RUnlock()
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *DevServer) handlePositions(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	s.mu.RLock()
	products := s.positions[addr]
	s.mu.RUnlock()
	if products == nil {
		products = []ProductDTO{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *DevServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	order := -1
	if raw := r.URL.Query().Get("sort"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != 1 && v != -1) {
			writeError(w, http.StatusBadRequest, "sort must be 1 or -1")
			return
		}
		order = v
	}

	s.mu.RLock()
	entries := slices.Clone(s.history[addr])
	s.mu.RUnlock()
	if entries == nil {
		entries = []HistoryDTO{}
	}

	slices.SortStableFunc(entries, func(a, b HistoryDTO) int {
		return a.CreatedAt.Compare(b.CreatedAt) * order
	})
	writeJSON(w, http.StatusOK, entries)
}

func (s *DevServer) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listingId")

	s.mu.RLock()
	listing, found := s.listings[id]
	s.mu.RUnlock()
	if !found {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *DevServer) handlePutListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listingId")

	var update ListingUpdateDTO
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.OfferPrice != nil && update.OfferPrice.IsNegative() {
		writeError(w, http.StatusBadRequest, "offerPrice must not be negative")
		return
	}

	s.mu.Lock()
	listing, found := s.listings[id]
	if !found {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	if update.OfferPrice != nil {
		listing.OfferPrice = *update.OfferPrice
	}
	if update.Quantity != nil {
		listing.Quantity = *update.Quantity
	}
	if update.StartingTime != nil {
		listing.StartingTime = *update.StartingTime
	}
	s.listings[id] = listing
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, listing)
}

func (s *DevServer) handleListedItems(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	var chainID uint64
	if raw := r.URL.Query().Get("chainId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid chainId")
			return
		}
		chainID = v
	}

	s.mu.RLock()
	items := make([]ListingDTO, 0)
	for _, l := range s.listings {
		if common.HexToAddress(l.Seller) != addr {
			continue
		}
		if chainID != 0 && l.ChainID != 0 && l.ChainID != chainID {
			continue
		}
		items = append(items, l)
	}
	s.mu.RUnlock()

	slices.SortFunc(items, func(a, b ListingDTO) int {
		return compareListingIDs(a.ListingID, b.ListingID)
	})
	writeJSON(w, http.StatusOK, items)
}

func addressParam(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		writeError(w, http.StatusBadRequest, "invalid address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// compareListingIDs orders numeric ids numerically and anything else lexically
func compareListingIDs(a, b string) int {
	x, errA := strconv.ParseUint(a, 10, 64)
	y, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func decodeJSON(r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
