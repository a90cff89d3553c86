package main

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"valpomap/handlers"
	"valpomap/middleware"
	"valpomap/services"
)

//go:embed static
var staticFiles embed.FS

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment as-is")
	}

	// Initialize services and handlers
	poiService := services.NewPoiService()
	poiHandler := handlers.NewPoiHandler(poiService)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	userService := services.NewUserService(poiService.Database(), jwtSecret)
	authHandler := handlers.NewAuthHandler(userService)

	r := mux.NewRouter()

	// CORS and panic recovery
	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.ErrorMiddleware())

	// Auth routes; register/login are open, /auth/me needs a token
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.RegisterUser).Methods("POST", "OPTIONS")
	authRouter.HandleFunc("/login", authHandler.LoginUser).Methods("POST", "OPTIONS")
	authRouter.Handle("/me", middleware.JWTMiddleware(jwtSecret)(http.HandlerFunc(authHandler.Me))).Methods("GET", "OPTIONS")

	// POI routes; deliberately unauthenticated
	r.HandleFunc("/pois/grouped", poiHandler.ListPOIsGrouped).Methods("GET", "OPTIONS")
	r.HandleFunc("/pois", poiHandler.ListPOIs).Methods("GET", "OPTIONS")
	r.HandleFunc("/pois", poiHandler.CreatePOI).Methods("POST", "OPTIONS")
	r.HandleFunc("/pois/{id}", poiHandler.UpdatePOI).Methods("PUT", "OPTIONS")
	r.HandleFunc("/pois/{id}", poiHandler.DeletePOI).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/categories", poiHandler.ListCategories).Methods("GET", "OPTIONS")

	// Embedded map front-end
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to mount static assets: %v", err)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("Server starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
