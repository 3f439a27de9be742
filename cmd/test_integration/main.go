package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Smoke client for a running server: checks /health, then runs one
// retrieval and prints the documents.
func main() {
	baseURL := os.Getenv("HYBRIDRAG_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	query := "Who works for Acme?"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	client := &http.Client{Timeout: 60 * time.Second}

	fmt.Println("1. Checking health...")
	if _, ok := send(client, http.MethodGet, baseURL+"/health", nil); !ok {
		fmt.Println("FAILED: health")
		os.Exit(1)
	}
	fmt.Println("PASSED: health")

	fmt.Printf("2. Retrieving %q...\n", query)
	body, ok := send(client, http.MethodPost, baseURL+"/retrieve", map[string]string{"query": query})
	if !ok {
		fmt.Println("FAILED: retrieve")
		os.Exit(1)
	}

	var resp struct {
		Documents []struct {
			Content    string `json:"content"`
			SourceType string `json:"source_type"`
			SourceName string `json:"source_name"`
		} `json:"documents"`
	}
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		fmt.Printf("FAILED: decode response: %v\n", err)
		os.Exit(1)
	}
	for i, doc := range resp.Documents {
		fmt.Printf("  [%d] %s/%s: %s\n", i, doc.SourceType, doc.SourceName, doc.Content)
	}
	fmt.Printf("PASSED: retrieve (%d documents)\n", len(resp.Documents))
}

func send(client *http.Client, method, url string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		b, err := jsoniter.Marshal(payload)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			return nil, false
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	fmt.Printf("Request id: %s\n", resp.Header.Get("X-Request-ID"))
	return respBody, true
}
