package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neurobeats/cache"
	"neurobeats/config"
	"neurobeats/core/auth"
	"neurobeats/core/catalog"
	"neurobeats/core/player"
	"neurobeats/core/session"
	"neurobeats/db"
	"neurobeats/logger"
	"neurobeats/model"
	"neurobeats/repository"
	"neurobeats/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: "logs/neurobeats.log",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := storage.InitMinio(cfg); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database via GORM: %v", err)
	}
	defer db.CloseGormDB()

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	log.Println("Successfully connected to Redis")

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.AutoMigrateModels(&model.UserPreferences{}, &model.ListeningHistory{}); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	profileRepo := repository.NewMySQLProfileRepository(db.DB)
	prefRepo := repository.NewGormPreferenceRepository(db.GormDB)
	historyRepo := repository.NewGormHistoryRepository(db.GormDB)

	// Catalog responses are cached in Redis so restarts keep warm entries;
	// the in-memory store is the fallback when Redis is unavailable.
	var catalogCache cache.Store
	if db.RedisClient != nil {
		catalogCache = cache.NewRedisStore(db.RedisClient, "catalog")
	} else {
		catalogCache = cache.NewMemoryStore()
	}
	catalogClient := catalog.NewClient(
		cfg.CatalogBaseURL,
		cfg.CatalogAPIKey,
		cfg.CatalogAPIKeyHost,
		cfg.CatalogRateLimit,
		cfg.CatalogRateBurst,
		cfg.CatalogHTTPTimeout,
	)
	catalogSvc := catalog.NewService(catalogClient, catalogCache)

	players := player.NewManager()
	bridge := session.NewBridge(profileRepo, prefRepo)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	apiHandler := NewAPIHandler(userRepo, profileRepo, prefRepo, historyRepo, catalogSvc, players, bridge, tokens, cfg)

	manifestSvc, err := NewManifestService(cfg.WebDir)
	if err != nil {
		log.Fatalf("Failed to load manifest files: %v", err)
	}
	defer manifestSvc.Close()

	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Public endpoints
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/manifest.webmanifest", manifestSvc.ManifestHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/cache-rules", manifestSvc.CacheRulesHandler).Methods(http.MethodGet)

	// The session endpoints sit behind the JWT middleware
	router.HandleFunc("/api/auth/me", apiHandler.AuthMiddleware(apiHandler.MeHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/logout", apiHandler.AuthMiddleware(apiHandler.LogoutHandler)).Methods(http.MethodPost)

	// Catalog endpoints
	router.HandleFunc("/api/catalog/search", apiHandler.AuthMiddleware(apiHandler.SearchHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/top-tracks", apiHandler.AuthMiddleware(apiHandler.TopTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/trending-playlists", apiHandler.AuthMiddleware(apiHandler.TrendingPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/genres", apiHandler.AuthMiddleware(apiHandler.GenresHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/genres/{id}/tracks", apiHandler.AuthMiddleware(apiHandler.GenreTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/genres/{id}/artists", apiHandler.AuthMiddleware(apiHandler.GenreArtistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/genres/{id}/radio", apiHandler.AuthMiddleware(apiHandler.GenreRadioHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/artists/{id}", apiHandler.AuthMiddleware(apiHandler.ArtistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/artists/{id}/top-tracks", apiHandler.AuthMiddleware(apiHandler.ArtistTopTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/artists/{id}/albums", apiHandler.AuthMiddleware(apiHandler.ArtistAlbumsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/artists/{id}/radio", apiHandler.AuthMiddleware(apiHandler.ArtistRadioHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/albums/{id}/tracks", apiHandler.AuthMiddleware(apiHandler.AlbumTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/playlists/{id}/tracks", apiHandler.AuthMiddleware(apiHandler.PlaylistTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/tracks/{id}", apiHandler.AuthMiddleware(apiHandler.TrackHandler)).Methods(http.MethodGet)

	// Player endpoints
	router.HandleFunc("/api/player", apiHandler.AuthMiddleware(apiHandler.PlayerStateHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/player/track", apiHandler.AuthMiddleware(apiHandler.SetCurrentTrackHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player/playing", apiHandler.AuthMiddleware(apiHandler.SetPlayingHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player/volume", apiHandler.AuthMiddleware(apiHandler.SetVolumeHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player/progress", apiHandler.AuthMiddleware(apiHandler.SetProgressHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player/duration", apiHandler.AuthMiddleware(apiHandler.SetDurationHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player/queue", apiHandler.AuthMiddleware(apiHandler.AddToQueueHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/queue", apiHandler.AuthMiddleware(apiHandler.ClearQueueHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/player/queue/{index:[0-9]+}", apiHandler.AuthMiddleware(apiHandler.RemoveFromQueueHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/player/next", apiHandler.AuthMiddleware(apiHandler.NextTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/previous", apiHandler.AuthMiddleware(apiHandler.PreviousTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/shuffle", apiHandler.AuthMiddleware(apiHandler.ToggleShuffleHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/player/repeat", apiHandler.AuthMiddleware(apiHandler.ToggleRepeatHandler)).Methods(http.MethodPost)
	router.HandleFunc("/ws/player", apiHandler.PlayerStreamHandler)

	// Profile and preferences endpoints
	router.HandleFunc("/api/profile", apiHandler.AuthMiddleware(apiHandler.GetProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/profile", apiHandler.AuthMiddleware(apiHandler.UpdateProfileHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/profile/username-available", apiHandler.AuthMiddleware(apiHandler.CheckUsernameHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/profile/avatar", apiHandler.AuthMiddleware(apiHandler.UploadAvatarHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/preferences", apiHandler.AuthMiddleware(apiHandler.GetPreferencesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/preferences", apiHandler.AuthMiddleware(apiHandler.UpdatePreferencesHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/onboarding/status", apiHandler.AuthMiddleware(apiHandler.OnboardingStatusHandler)).Methods(http.MethodGet)

	// Listening history endpoints
	router.HandleFunc("/api/history", apiHandler.AuthMiddleware(apiHandler.RecordPlayHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/history", apiHandler.AuthMiddleware(apiHandler.RecentHistoryHandler)).Methods(http.MethodGet)

	// Unknown /api paths answer JSON instead of the mux default
	router.PathPrefix("/api/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.HTTPAddr)
		log.Println("Catalog endpoints under /api/catalog")
		log.Println("Player endpoints under /api/player, live updates on /ws/player")
		log.Println("Auth via /api/auth/register and /api/auth/login")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
