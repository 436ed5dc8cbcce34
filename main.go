package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EmpoweredVote/rental-search/internal/db"
	"github.com/EmpoweredVote/rental-search/internal/middleware"
	"github.com/EmpoweredVote/rental-search/internal/profiles"
	"github.com/EmpoweredVote/rental-search/internal/search"
	"github.com/EmpoweredVote/rental-search/internal/standards"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	reg, err := standards.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load payment standards: ", err)
	}

	// Profiles are optional; without a database the service still searches.
	var store profiles.Store
	if err := db.Connect(); err != nil {
		if !errors.Is(err, db.ErrNoDatabase) {
			log.Fatal("Failed to connect to database: ", err)
		}
		log.Println("DATABASE_URL not set; client profiles disabled")
	} else {
		gs, err := profiles.Init(db.DB)
		if err != nil {
			log.Fatal("Failed to initialize profiles: ", err)
		}
		store = gs
	}

	svc := search.Init(reg, store)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(middleware.AllowedOrigins()))
	r.Get("/", RootHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/standards", standards.SetupRoutes(reg))
	r.Mount("/search", search.SetupRoutes(svc))
	if store != nil {
		knownRegion := func(key string) bool {
			_, ok := reg.Region(key)
			return ok
		}
		r.Mount("/profiles", profiles.SetupRoutes(store, knownRegion))
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server listening on port :%s...", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
