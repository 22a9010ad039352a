package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
)

// llmstub - заглушка Ollama /api/generate для локальной разработки без
// запущенной модели. Возвращает детерминированный валидный JSON ответ:
//
//	go run ./cmd/llmstub -port 11434 -score 75.5
//	OLLAMA_URL=http://localhost:11434/api/generate go run ./cmd/server

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func main() {
	port := flag.String("port", "11434", "port to listen on")
	score := flag.Float64("score", 75.5, "stress_score to return")
	flag.Parse()

	canned := fmt.Sprintf(
		`{"stress_score": %g, "reason": "Stress level is elevated: stress_level readings exceed 40 in most records, sleep_hours average below 6, and mental_health_status shows CONCERN entries."}`,
		*score,
	)

	http.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, `{"error": "method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
			return
		}

		log.Printf("[STUB] Generate request: model=%s prompt_length=%d", req.Model, len(req.Prompt))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{
			Model:    req.Model,
			Response: canned,
			Done:     true,
		})
	})

	log.Printf("[STUB] Ollama stub listening on :%s, returning stress_score=%g", *port, *score)
	if err := http.ListenAndServe(":"+*port, nil); err != nil {
		log.Fatalf("[FATAL] Stub server failed: %v", err)
	}
}
