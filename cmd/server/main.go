package main

import (
	"log"
	"net/http"
	"os"

	"github.com/daily-word/backend/internal/auth"
	"github.com/daily-word/backend/internal/catalog"
	"github.com/daily-word/backend/internal/database"
	"github.com/daily-word/backend/internal/enrich"
	"github.com/daily-word/backend/internal/middleware"
	"github.com/daily-word/backend/internal/notify"
	"github.com/daily-word/backend/internal/progress"
	"github.com/daily-word/backend/internal/scheduler"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Load the word catalog
	words, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load word catalog: %v", err)
	}
	log.Printf("Loaded %d words", words.Count())

	// Progress store: Postgres primary, JSON files as the write fallback
	fallbackDir := os.Getenv("FALLBACK_STORE_DIR")
	if fallbackDir == "" {
		fallbackDir = "data/progress"
	}
	jsonStore, err := progress.NewJSONStore(fallbackDir)
	if err != nil {
		log.Fatalf("Failed to open fallback store: %v", err)
	}
	store := progress.NewFallback(progress.NewPostgresStore(db), jsonStore)

	// Services and handlers
	notifier := notify.NewStoredNotifier(db)
	service := progress.NewService(store, words, notifier)

	authHandler := auth.NewHandler(db)
	progressHandler := progress.NewHandler(service)
	catalogHandler := catalog.NewHandler(words)
	notifyHandler := notify.NewHandler(notifier)
	enrichHandler := enrich.NewHandler(words, enrich.NewClient())

	// Daily rotation and reminder sweeps
	sched := scheduler.New(service, service)
	sched.Start()
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/progress", progressHandler.GetState).Methods("GET")
	protected.HandleFunc("/progress/today", progressHandler.GetToday).Methods("GET")
	protected.HandleFunc("/progress/rotate", progressHandler.Rotate).Methods("POST")
	protected.HandleFunc("/progress/used", progressHandler.MarkUsed).Methods("POST")
	protected.HandleFunc("/progress/favorite", progressHandler.ToggleFavorite).Methods("POST")
	protected.HandleFunc("/progress/note", progressHandler.AddNote).Methods("POST")
	protected.HandleFunc("/progress/review", progressHandler.Review).Methods("POST")
	protected.HandleFunc("/progress/detect", progressHandler.Detect).Methods("POST")
	protected.HandleFunc("/progress/scan", progressHandler.Scan).Methods("POST")
	protected.HandleFunc("/progress/export", progressHandler.Export).Methods("GET")
	protected.HandleFunc("/progress/reset", progressHandler.Reset).Methods("POST")
	protected.HandleFunc("/progress/reminders", progressHandler.SetReminders).Methods("PUT")
	protected.HandleFunc("/achievements", progressHandler.GetAchievements).Methods("GET")

	protected.HandleFunc("/words/lookup", catalogHandler.Lookup).Methods("GET")
	protected.HandleFunc("/words/{index:[0-9]+}", catalogHandler.GetWord).Methods("GET")
	protected.HandleFunc("/words/{index:[0-9]+}/enrich", enrichHandler.Enrich).Methods("GET")

	protected.HandleFunc("/notifications", notifyHandler.GetUnread).Methods("GET")
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notifyHandler.MarkRead).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
