package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gamecatalog/cache"
	"gamecatalog/db"
	"gamecatalog/models"
	"gamecatalog/monitoring"
	"gamecatalog/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Catalog is the part of the store the search service needs.
type Catalog interface {
	Execute(ctx context.Context, dest interface{}, sqlText string, args ...interface{}) (int64, error)
	Dialect() string
}

// ListResponse is the /list success envelope.
type ListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []models.Game `json:"data"`
}

// GameService answers listing and search requests.
type GameService struct {
	catalog Catalog
	cache   *cache.Cache
}

// NewGameService builds the service. listCache may be nil.
func NewGameService(catalog Catalog, listCache *cache.Cache) *GameService {
	return &GameService{catalog: catalog, cache: listCache}
}

// ListGames lists the whole catalog when term is empty and runs the ranked
// search otherwise. Store errors are returned unchanged.
func (s *GameService) ListGames(ctx context.Context, term string) (*ListResponse, error) {
	key := cache.ListKey(term)
	if s.cache.Enabled() {
		var cached ListResponse
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			monitoring.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		monitoring.CacheLookupsTotal.WithLabelValues("miss").Inc()
		if !errors.Is(err, cache.ErrMiss) {
			utils.Log.WithError(err).Warn("List cache read failed")
		}
	}

	kind := "search"
	if term == "" {
		kind = "list"
	}

	query, args := BuildListQuery(term, s.catalog.Dialect())
	games := make([]models.Game, 0)

	started := time.Now()
	_, err := s.catalog.Execute(ctx, &games, query, args...)
	monitoring.ObserveQuery(kind, started, err)
	if err != nil {
		return nil, err
	}

	if term == "" {
		monitoring.CatalogGamesListed.Set(float64(len(games)))
	}

	resp := &ListResponse{
		Success: true,
		Count:   len(games),
		Data:    games,
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			utils.Log.WithError(err).Warn("List cache write failed")
		}
	}
	return resp, nil
}

// ListGamesHandler serves GET /list?search=
func ListGamesHandler(svc *GameService, exposeDiagnostics bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")

		resp, err := svc.ListGames(c.Request.Context(), search)
		if err != nil {
			_ = c.Error(err)
			utils.Log.WithFields(logrus.Fields{
				"search": search,
				"error":  err.Error(),
			}).Error("Error fetching games")

			body := gin.H{
				"success": false,
				"error":   "Failed to fetch games",
			}
			if exposeDiagnostics {
				body["message"] = diagnostic(err)
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// diagnostic is the client-facing text for a store failure.
func diagnostic(err error) string {
	var queryErr *db.QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Message()
	}
	var connErr *db.ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Err.Error()
	}
	return err.Error()
}
