// cmd/mock-llm/main.go
//
// Stand-in scoring backend for local development. Speaks the same wire
// contract as a real endpoint: GET /health and POST /generate.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"net/http"

	"go.uber.org/zap"

	"podcast-guest-tracker/internal/common/logger"
)

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
	Model         string `json:"model"`
}

var cannedResponses = []string{
	"Score: 82\nVerdict: book\n- Expertise aligns closely with the channel's core topics\n- Strong authority indicators and established audience\n- Previous podcast experience suggests a polished conversationalist",
	"Score: 75\nVerdict: book\n- Good topical overlap with recent channel content\n- Moderate social following limits audience expansion upside",
	"Score: 55\nVerdict: maybe\n- Relevant expertise but limited previous podcast experience\n- Niche focus may not resonate with the broader audience",
	"Score: 35\nVerdict: pass\n- Weak alignment with the channel's primary topics\n- Minimal authority indicators and small social presence",
}

func main() {
	var (
		addr  = flag.String("addr", ":8081", "listen address")
		model = flag.String("model", "mock-llama-3.1", "model name reported in responses")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "model": *model})
	})

	mux.HandleFunc("POST /generate", func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
			return
		}

		// Same prompt, same canned answer; keeps local runs reproducible.
		h := fnv.New32a()
		h.Write([]byte(req.Prompt))
		text := cannedResponses[h.Sum32()%uint32(len(cannedResponses))]

		zapLog.Info("generate",
			zap.Int("promptLen", len(req.Prompt)),
			zap.Int("maxTokens", req.MaxTokens),
		)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{GeneratedText: text, Model: *model})
	})

	zapLog.Info("mock LLM server listening", zap.String("addr", *addr), zap.String("model", *model))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}
}
