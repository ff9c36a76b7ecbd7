package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Panashe816/viral-news-backend/internal/cache"
	"github.com/Panashe816/viral-news-backend/internal/category"
	"github.com/Panashe816/viral-news-backend/internal/feed"
	"github.com/Panashe816/viral-news-backend/internal/model"
)

// Server serves the feed API. The homepage cache is owned state injected
// here, not a package global.
type Server struct {
	feed          *feed.Service
	homepageCache *cache.Cache
}

func New(feedService *feed.Service, homepageCache *cache.Cache) *Server {
	return &Server{
		feed:          feedService,
		homepageCache: homepageCache,
	}
}

// Handler builds the route table. Article and homepage routes sit behind
// per-IP rate limiting whose sweep goroutine stops with ctx; health
// endpoints stay outside it so uptime probes are never throttled.
func (s *Server) Handler(ctx context.Context, rps float64, burst int) http.Handler {
	limited := RateLimit(ctx, rps, burst)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.HandlerFunc(s.handleIndex))
	mux.Handle("GET /homepage", limited(http.HandlerFunc(s.handleHomepage)))
	mux.Handle("GET /articles/{$}", limited(http.HandlerFunc(s.handleListArticles)))
	mux.Handle("GET /articles/categories/list", limited(http.HandlerFunc(s.handleCategories)))
	mux.Handle("GET /articles/{id}", limited(http.HandlerFunc(s.handleGetArticle)))
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Viral News API is running",
		"endpoints": map[string]string{
			"homepage":      "/homepage",
			"articles":      "/articles/",
			"article_by_id": "/articles/{id}",
			"categories":    "/articles/categories/list",
			"health":        "/health",
		},
		"note": "Current architecture uses highlighted_articles as the ONLY feed source.",
	})
}

func (s *Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paginationParams(w, r, feed.DefaultHomepageLimit)
	if !ok {
		return
	}
	limit = feed.ClampLimit(limit, feed.DefaultHomepageLimit, feed.MaxHomepageLimit)
	offset = feed.ClampOffset(offset, feed.MaxHomepageOffset)

	// Clamped first so oversized requests share a cache entry with the
	// cap, keeping key cardinality bounded by the permitted page shapes.
	key := fmt.Sprintf("%d:%d", limit, offset)

	payload, _, err := s.homepageCache.GetOrCompute(key, func() ([]byte, error) {
		p, err := s.feed.Homepage(r.Context(), limit, offset)
		if err != nil {
			return nil, err
		}
		return json.Marshal(p)
	})
	if err != nil {
		log.Printf("ERROR: homepage request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.homepageCache.TTL().Seconds())))
	w.Write(payload)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paginationParams(w, r, feed.DefaultListLimit)
	if !ok {
		return
	}

	articles, err := s.feed.List(r.Context(), r.URL.Query().Get("category"), limit, offset)
	if err != nil {
		log.Printf("ERROR: list articles failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []feed.Serialized{}
	}

	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid article id", http.StatusBadRequest)
		return
	}

	article, err := s.feed.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Article not found"})
			return
		}
		log.Printf("ERROR: get article %d failed: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"order": category.Order()})
}

// handleHealth answers uptime probes without touching storage. Registering
// GET also covers HEAD.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// paginationParams parses limit/offset, rejecting malformed or negative
// values before storage is touched. Returns ok=false after writing a 400.
func paginationParams(w http.ResponseWriter, r *http.Request, defaultLimit int) (limit, offset int, ok bool) {
	limit, ok = queryInt(w, r, "limit", defaultLimit)
	if !ok {
		return 0, 0, false
	}
	offset, ok = queryInt(w, r, "offset", 0)
	if !ok {
		return 0, 0, false
	}
	return limit, offset, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		http.Error(w, fmt.Sprintf("invalid %s parameter", name), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encoding response: %v", err)
	}
}
