package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// FakeAPI - in-memory имитация boxing/playlist API для тестов прогона.
// Ответы форматируются с отступами, как Flask в debug режиме,
// поэтому содержат маркер `"status": "success"` с пробелом.
// Исход боя не вычисляется: побеждает первый вошедший в ринг.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []string
	failures map[string]failure

	nextID   int
	boxers   map[int]fakeBoxer
	ring     []int
	songs    map[int]map[string]any
	playlist []int
}

type fakeBoxer struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Weight int     `json:"weight"`
	Height int     `json:"height"`
	Reach  float64 `json:"reach"`
	Age    int     `json:"age"`
	Wins   int     `json:"wins"`
	Fights int     `json:"fights"`
}

type failure struct {
	status      int
	contentType string
	body        string
}

// NewFakeAPI запускает FakeAPI и регистрирует остановку в t.Cleanup.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		failures: make(map[string]failure),
		boxers:   make(map[int]fakeBoxer),
		songs:    make(map[int]map[string]any),
	}

	r := chi.NewRouter()
	r.Use(f.record, f.injectFailures)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", f.ok(map[string]any{"message": "Service is running"}))
		r.Get("/db-check", f.ok(map[string]any{"database_status": "healthy"}))

		r.Post("/create-boxer", f.createBoxer)
		r.Delete("/delete-boxer/{id}", f.deleteBoxer)
		r.Get("/get-boxer-by-id/{id}", f.getBoxerByID)
		r.Get("/get-boxer-by-name/{name}", f.getBoxerByName)
		r.Post("/enter-ring", f.enterRing)
		r.Get("/get-boxers", f.getRing)
		r.Get("/fight", f.fight)
		r.Post("/clear-boxers", f.clearRing)
		r.Get("/leaderboard", f.leaderboard)

		r.Post("/create-song", f.createSong)
		r.Get("/get-song-from-catalog-by-id/{id}", f.getSong)
		r.Post("/add-song-to-playlist", f.addToPlaylist)
		r.Get("/get-all-songs-from-playlist", f.getPlaylist)
		r.Post("/clear-playlist", f.clearPlaylist)
		r.Delete("/delete-song/{id}", f.deleteSong)
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL возвращает базовый URL API, например "http://127.0.0.1:41234/api".
func (f *FakeAPI) BaseURL() string {
	return f.Server.URL + "/api"
}

// FailWith заставляет путь (без префикса /api, например "/fight") отвечать
// заданным статусом и телом вместо обычного ответа.
func (f *FakeAPI) FailWith(path string, status int, contentType, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures["/api"+path] = failure{status: status, contentType: contentType, body: body}
}

// Fail заставляет путь отвечать `"status": "error"`.
func (f *FakeAPI) Fail(path string) {
	f.FailWith(path, http.StatusInternalServerError, "application/json", "{\n  \"status\": \"error\",\n  \"message\": \"injected failure\"\n}")
}

// Requests возвращает полученные запросы в виде "METHOD /path" без префикса /api.
func (f *FakeAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api"))
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fail, ok := f.failures[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", fail.contentType)
		w.WriteHeader(fail.status)
		_, _ = w.Write([]byte(fail.body)) //nolint:errcheck // test server
	})
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	if _, ok := payload["status"]; !ok {
		payload["status"] = "success"
	}
	body, _ := json.MarshalIndent(payload, "", "  ") //nolint:errcheck // map[string]any всегда сериализуется
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body) //nolint:errcheck // test server
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

func (f *FakeAPI) ok(payload map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make(map[string]any, len(payload))
		for k, v := range payload {
			out[k] = v
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (f *FakeAPI) createBoxer(w http.ResponseWriter, r *http.Request) {
	var b fakeBoxer
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.Name == "" {
		writeError(w, http.StatusBadRequest, "Invalid input, all fields are required with valid values")
		return
	}

	f.mu.Lock()
	for _, existing := range f.boxers {
		if existing.Name == b.Name {
			f.mu.Unlock()
			writeError(w, http.StatusBadRequest, "Boxer with name '"+b.Name+"' already exists")
			return
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.boxers[b.ID] = b
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Boxer '" + b.Name + "' added successfully", "id": b.ID})
}

func (f *FakeAPI) deleteBoxer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	f.mu.Lock()
	_, exists := f.boxers[id]
	delete(f.boxers, id)
	f.mu.Unlock()

	if !ok || !exists {
		writeError(w, http.StatusNotFound, "Boxer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Boxer deleted successfully"})
}

func (f *FakeAPI) getBoxerByID(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	f.mu.Lock()
	b, exists := f.boxers[id]
	f.mu.Unlock()

	if !exists {
		writeError(w, http.StatusNotFound, "Boxer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boxer": b})
}

func (f *FakeAPI) getBoxerByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.boxers {
		if b.Name == name {
			writeJSON(w, http.StatusOK, map[string]any{"boxer": b})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Boxer not found")
}

func (f *FakeAPI) enterRing(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ring) >= 2 {
		writeError(w, http.StatusBadRequest, "Ring is full, cannot add more boxers.")
		return
	}
	for _, b := range f.boxers {
		if b.Name == in.Name {
			f.ring = append(f.ring, b.ID)
			writeJSON(w, http.StatusOK, map[string]any{"message": "Boxer '" + in.Name + "' is now in the ring."})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Boxer not found")
}

func (f *FakeAPI) getRing(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]fakeBoxer, 0, len(f.ring))
	for _, id := range f.ring {
		out = append(out, f.boxers[id])
	}
	writeJSON(w, http.StatusOK, map[string]any{"boxers": out})
}

func (f *FakeAPI) fight(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ring) < 2 {
		writeError(w, http.StatusBadRequest, "There must be two boxers to start a fight.")
		return
	}
	for i, id := range f.ring {
		b := f.boxers[id]
		b.Fights++
		if i == 0 {
			b.Wins++
		}
		f.boxers[id] = b
	}
	winner := f.boxers[f.ring[0]].Name
	f.ring = nil
	writeJSON(w, http.StatusOK, map[string]any{"message": "Fight complete", "winner": winner})
}

func (f *FakeAPI) clearRing(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.ring = nil
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Boxers have been cleared from the ring."})
}

func (f *FakeAPI) leaderboard(w http.ResponseWriter, r *http.Request) {
	sort := r.URL.Query().Get("sort")
	if sort != "wins" && sort != "win_pct" {
		writeError(w, http.StatusBadRequest, "Invalid sort_by parameter: "+sort)
		return
	}

	f.mu.Lock()
	out := make([]fakeBoxer, 0, len(f.boxers))
	for _, b := range f.boxers {
		if b.Fights > 0 {
			out = append(out, b)
		}
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": out, "sort": sort})
}

func (f *FakeAPI) createSong(w http.ResponseWriter, r *http.Request) {
	var song map[string]any
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil || song["title"] == nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	song["id"] = id
	f.songs[id] = song
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Song added", "id": id})
}

func (f *FakeAPI) getSong(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	f.mu.Lock()
	song, ok := f.songs[id]
	f.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"song": song})
}

func (f *FakeAPI) addToPlaylist(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Artist string `json:"artist"`
		Title  string `json:"title"`
		Year   int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.songs {
		if s["artist"] == in.Artist && s["title"] == in.Title {
			f.playlist = append(f.playlist, id)
			writeJSON(w, http.StatusCreated, map[string]any{"message": "Song added to playlist"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Song not found in catalog")
}

func (f *FakeAPI) getPlaylist(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]map[string]any, 0, len(f.playlist))
	for _, id := range f.playlist {
		out = append(out, f.songs[id])
	}
	writeJSON(w, http.StatusOK, map[string]any{"songs": out})
}

func (f *FakeAPI) clearPlaylist(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.playlist = nil
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Playlist cleared"})
}

func (f *FakeAPI) deleteSong(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	f.mu.Lock()
	_, ok := f.songs[id]
	delete(f.songs, id)
	f.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Song deleted"})
}
