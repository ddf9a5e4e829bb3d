package client

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// APIClient is the HTTP side of the terminal client. It carries the token
// pair and retries once after a refresh when a request comes back 401.
type APIClient struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewAPIClient() (*APIClient, error) {
	_ = godotenv.Load()

	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	baseURL := serverURL + "/api"
	httpClient := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest("GET", baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server at %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned unexpected status: %s", resp.Status)
	}

	return &APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

func (c *APIClient) SetToken(token string) {
	c.accessToken = token
}

func (c *APIClient) SetTokenPair(access, refresh string) {
	c.accessToken = access
	c.refreshToken = refresh
}
