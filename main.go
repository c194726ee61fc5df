package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"github.com/mbutler/baseball-simulator-sub000/simulation"
)

type Server struct {
	db         *pgxpool.Pool
	router     *mux.Router
	httpServer *http.Server
	config     *Config
	engine     *simulation.Engine
}

type Config struct {
	Port           string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	Workers        int
	SimulationRuns int
}

type SimulationRequest struct {
	HomeTeamID     string `json:"home_team_id"`
	AwayTeamID     string `json:"away_team_id"`
	SimulationRuns int    `json:"simulation_runs,omitempty"`
	Seed           uint64 `json:"seed,omitempty"`
}

type SimulationResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type SimulationStatus struct {
	RunID         string     `json:"run_id"`
	HomeTeam      string     `json:"home_team"`
	AwayTeam      string     `json:"away_team"`
	Status        string     `json:"status"`
	TotalRuns     int        `json:"total_runs"`
	CompletedRuns int        `json:"completed_runs"`
	Progress      float64    `json:"progress"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func NewConfig() *Config {
	workers := runtime.NumCPU()
	if envWorkers := os.Getenv("WORKERS"); envWorkers != "" {
		fmt.Sscanf(envWorkers, "%d", &workers)
	}

	simulationRuns := 1000
	if envRuns := os.Getenv("SIMULATION_RUNS"); envRuns != "" {
		fmt.Sscanf(envRuns, "%d", &simulationRuns)
	}

	return &Config{
		Port:           getEnv("PORT", "8081"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "baseball_user"),
		DBPassword:     getEnv("DB_PASSWORD", "baseball_pass"),
		DBName:         getEnv("DB_NAME", "baseball_sim"),
		Workers:        workers,
		SimulationRuns: simulationRuns,
	}
}

func NewServer(config *Config) (*Server, error) {
	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)

	dbConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}

	dbConfig.MaxConns = int32(config.Workers * 2)
	dbConfig.MaxConnLifetime = time.Hour
	dbConfig.MaxConnIdleTime = time.Minute * 30

	db, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	engine := simulation.NewEngine(db, config.Workers, config.SimulationRuns)
	engine.StartMaintenance()

	s := &Server{
		db:     db,
		config: config,
		router: mux.NewRouter(),
		engine: engine,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")

	s.router.HandleFunc("/simulate", s.simulateHandler).Methods("POST")
	s.router.HandleFunc("/simulation/{id}/status", s.simulationStatusHandler).Methods("GET")
	s.router.HandleFunc("/simulation/{id}/result", s.simulationResultHandler).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

func (s *Server) Start() error {
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      corsWrapper.Handler(handlers.CompressHandler(s.router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting simulation service on port %s with %d workers",
		s.config.Port, s.config.Workers)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down simulation service...")
	s.db.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"workers":  s.config.Workers,
		"database": "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		health["database"] = "disconnected"
		health["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, health)
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.HomeTeamID == "" || req.AwayTeamID == "" {
		http.Error(w, "home_team_id and away_team_id are required", http.StatusBadRequest)
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		http.Error(w, "a team cannot play itself", http.StatusBadRequest)
		return
	}

	homeRoster, err := simulation.LoadRoster(r.Context(), s.db, req.HomeTeamID)
	if err != nil {
		log.Printf("Failed to load home roster: %v", err)
		http.Error(w, "Home team not found", http.StatusNotFound)
		return
	}

	awayRoster, err := simulation.LoadRoster(r.Context(), s.db, req.AwayTeamID)
	if err != nil {
		log.Printf("Failed to load away roster: %v", err)
		http.Error(w, "Away team not found", http.StatusNotFound)
		return
	}

	runID := uuid.New().String()
	simulationRuns := req.SimulationRuns
	if simulationRuns == 0 {
		simulationRuns = s.config.SimulationRuns
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if err := s.engine.CreateRun(r.Context(), runID, req.HomeTeamID, req.AwayTeamID, simulationRuns); err != nil {
		log.Printf("Failed to create simulation run: %v", err)
		http.Error(w, "Failed to create simulation", http.StatusInternalServerError)
		return
	}

	go s.engine.RunSimulation(runID, homeRoster, awayRoster, simulationRuns, seed)

	writeJSON(w, SimulationResponse{
		RunID:     runID,
		Status:    "started",
		Message:   fmt.Sprintf("Simulation started with %d runs", simulationRuns),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Server) simulationStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	runStatus, exists := s.engine.GetRunStatus(runID)
	if !exists {
		http.Error(w, "Simulation not found", http.StatusNotFound)
		return
	}

	progress := 0.0
	if runStatus.TotalRuns > 0 {
		progress = float64(runStatus.CompletedRuns) / float64(runStatus.TotalRuns)
	}

	writeJSON(w, SimulationStatus{
		RunID:         runStatus.RunID,
		HomeTeam:      runStatus.HomeTeam,
		AwayTeam:      runStatus.AwayTeam,
		Status:        runStatus.Status,
		TotalRuns:     runStatus.TotalRuns,
		CompletedRuns: runStatus.CompletedRuns,
		Progress:      progress,
		CreatedAt:     runStatus.StartTime,
		CompletedAt:   runStatus.CompletedTime,
	})
}

func (s *Server) simulationResultHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	if runStatus, exists := s.engine.GetRunStatus(runID); exists && runStatus.Status != "completed" {
		http.Error(w, "Simulation not yet complete", http.StatusAccepted)
		return
	}

	result, err := s.engine.GetRunResult(r.Context(), runID)
	if err != nil {
		log.Printf("Failed to get simulation results: %v", err)
		http.Error(w, "Results not available", http.StatusNotFound)
		return
	}

	writeJSON(w, result)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		log.Printf("%s %s %d %v", r.Method, r.RequestURI, lrw.statusCode, time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	config := NewConfig()

	server, err := NewServer(config)
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("Server shutdown failed:", err)
		}
		log.Println("Server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed to start:", err)
	}
}
