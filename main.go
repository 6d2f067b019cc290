package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/CivicLink/Civic311-Backend/internal/boundary"
	"github.com/CivicLink/Civic311-Backend/internal/catalog"
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/CivicLink/Civic311-Backend/internal/requests"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5060"
	}

	catalog.Init()
	boundary.Init()
	requests.Init()

	checker := permission.NewChecker()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.BearerTokenMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/catalog", catalog.SetupRoutes(checker))
	r.Mount("/boundaries", boundary.SetupRoutes(checker))
	r.Mount("/requests", requests.SetupRoutes(checker))

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
