package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultPort       = "8082"
	defaultToken      = "domain-provider-token"
	defaultProjectID  = "prj_whitelabel"
	defaultIPv4       = "76.76.21.21"
	defaultCNAME      = "cname.vercel-dns.com."
	defaultVerifyWait = "0"
)

type projectDomain struct {
	Name      string    `json:"name"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"-"`
}

type ranked[T any] struct {
	Rank  int `json:"rank"`
	Value T   `json:"value"`
}

type domainConfig struct {
	RecommendedIPv4  []ranked[[]string] `json:"recommendedIPv4"`
	RecommendedCNAME []ranked[string]   `json:"recommendedCNAME"`
	Misconfigured    bool               `json:"misconfigured"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var (
	token      = getEnv("API_TOKEN", defaultToken)
	projectID  = getEnv("PROJECT_ID", defaultProjectID)
	verifyWait = time.Duration(getEnvInt("VERIFY_AFTER_SECONDS", defaultVerifyWait)) * time.Second

	mu      sync.Mutex
	domains = map[string]*projectDomain{}
)

// Hosts under these labels behave as attached to another provider project.
var elsewherePrefixes = []string{"taken.", "www.taken."}

func main() {
	port := getEnv("PORT", defaultPort)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("POST /v10/projects/{project}/domains", authorized(handleAddDomain))
	mux.HandleFunc("GET /v9/projects/{project}/domains/{domain}", authorized(handleGetDomain))
	mux.HandleFunc("DELETE /v9/projects/{project}/domains/{domain}", authorized(handleRemoveDomain))
	mux.HandleFunc("GET /v6/domains/{domain}/config", authorized(handleDomainConfig))

	// Test controls
	mux.HandleFunc("POST /_mock/domains/{domain}/verify", handleForceVerify)
	mux.HandleFunc("POST /_mock/reset", handleReset)

	log.Printf("Mock domain provider starting on port %s", port)
	log.Printf("Project: %s, verify after: %s", projectID, verifyWait)

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

func authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeError(w, http.StatusForbidden, "forbidden", "invalid token")
			return
		}
		if project := r.PathValue("project"); project != "" && project != projectID {
			writeError(w, http.StatusNotFound, "not_found", "project not found")
			return
		}
		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "domain-provider",
	})
}

func handleAddDomain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	host := strings.ToLower(req.Name)

	if inUseElsewhere(host) {
		writeError(w, http.StatusConflict, "domain_already_in_use", "domain is in use by another project")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := domains[host]; ok {
		writeError(w, http.StatusConflict, "domain_already_in_use", "domain is already assigned to this project")
		return
	}
	d := &projectDomain{Name: host, CreatedAt: time.Now()}
	domains[host] = d
	log.Printf("added %s", host)
	writeJSON(w, http.StatusOK, d)
}

func handleGetDomain(w http.ResponseWriter, r *http.Request) {
	host := strings.ToLower(r.PathValue("domain"))

	mu.Lock()
	defer mu.Unlock()
	d, ok := domains[host]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "domain not found on project")
		return
	}
	if !d.Verified && verifyWait > 0 && time.Since(d.CreatedAt) >= verifyWait {
		d.Verified = true
	}
	writeJSON(w, http.StatusOK, d)
}

func handleRemoveDomain(w http.ResponseWriter, r *http.Request) {
	host := strings.ToLower(r.PathValue("domain"))

	mu.Lock()
	defer mu.Unlock()
	if _, ok := domains[host]; !ok {
		writeError(w, http.StatusNotFound, "not_found", "domain not found on project")
		return
	}
	delete(domains, host)
	log.Printf("removed %s", host)
	writeJSON(w, http.StatusOK, map[string]string{})
}

func handleDomainConfig(w http.ResponseWriter, r *http.Request) {
	host := strings.ToLower(r.PathValue("domain"))

	mu.Lock()
	d, ok := domains[host]
	mu.Unlock()

	writeJSON(w, http.StatusOK, domainConfig{
		RecommendedIPv4:  []ranked[[]string]{{Rank: 1, Value: []string{defaultIPv4}}},
		RecommendedCNAME: []ranked[string]{{Rank: 1, Value: defaultCNAME}},
		Misconfigured:    !ok || !d.Verified,
	})
}

func handleForceVerify(w http.ResponseWriter, r *http.Request) {
	host := strings.ToLower(r.PathValue("domain"))

	mu.Lock()
	defer mu.Unlock()
	d, ok := domains[host]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "domain not found on project")
		return
	}
	d.Verified = true
	writeJSON(w, http.StatusOK, d)
}

func handleReset(w http.ResponseWriter, _ *http.Request) {
	mu.Lock()
	domains = map[string]*projectDomain{}
	mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func inUseElsewhere(host string) bool {
	for _, prefix := range elsewherePrefixes {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // mock server
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	writeJSON(w, status, e)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key, fallback string) int {
	n, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0
	}
	return n
}
