package main

import (
	"context"
	"net/http"

	"heritage-check-api/internal/cache"
	"heritage-check-api/internal/config"
	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/geocoder"
	"heritage-check-api/internal/handler"
	"heritage-check-api/internal/metrics"
	"heritage-check-api/internal/models"
	"heritage-check-api/internal/ratelimit"
	"heritage-check-api/internal/repository"
	"heritage-check-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	m := metrics.New(prometheus.DefaultRegisterer)
	repo := repository.NewRepository(conn, log.Logger)

	addressCache := cache.New[[]models.GeocodingCandidate]()
	coverage := geo.LondonCoverage()
	geocodeClient := geocoder.NewClient(
		config.GeocoderBaseURL,
		config.GeocoderToken,
		config.GeocoderTimeout,
		coverage,
		addressCache,
		config.GeocodeCacheTTL,
		m,
	)

	checkService := service.NewPropertyCheckService(
		geocodeClient,
		repo,
		repo,
		coverage,
		config.ListedBuildingRadiusMeters,
		config.SearchRecordTimeout,
		log.Logger,
		m,
	)
	autocompleteService := service.NewAutocompleteService(geocodeClient, coverage.Center())

	checkHandler := handler.NewCheckHandler(checkService)
	autocompleteHandler := handler.NewAutocompleteHandler(autocompleteService)

	checkLimiter := ratelimit.NewLimiter(config.CheckRateLimit, config.CheckRateWindow, config.RateLimitMaxClients)
	autocompleteLimiter := ratelimit.NewLimiter(config.AutocompleteRateLimit, config.AutocompleteRateWindow, config.RateLimitMaxClients)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.POST("/property-check", handler.RateLimit(checkLimiter, "check", m), checkHandler.Check)
	api.GET("/autocomplete", handler.RateLimit(autocompleteLimiter, "autocomplete", m), autocompleteHandler.Autocomplete)

	r.Run(config.ServerAddress)
}
