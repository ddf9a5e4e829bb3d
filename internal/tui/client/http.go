package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *APIClient) get(path string) ([]byte, error) {
	body, err := c.request("GET", path, nil)
	if err != nil && isUnauthorized(err) && c.refreshToken != "" {
		if rerr := c.refreshTokens(); rerr == nil {
			return c.request("GET", path, nil)
		}
	}
	return body, err
}

func (c *APIClient) post(path string, data any) (map[string]any, error) {
	return c.jsonRequest("POST", path, data)
}

func (c *APIClient) patch(path string, data any) (map[string]any, error) {
	return c.jsonRequest("PATCH", path, data)
}

func (c *APIClient) delete(path string) (map[string]any, error) {
	return c.jsonRequest("DELETE", path, nil)
}

func (c *APIClient) jsonRequest(method, path string, data any) (map[string]any, error) {
	var payload []byte
	if data != nil {
		var err error
		payload, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	resp, err := c.request(method, path, payload)
	if err != nil && isUnauthorized(err) && c.refreshToken != "" {
		if rerr := c.refreshTokens(); rerr == nil {
			resp, err = c.request(method, path, payload)
		}
	}
	if err != nil {
		return nil, err
	}

	result := map[string]any{}
	if len(resp) > 0 {
		if err := json.Unmarshal(resp, &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *APIClient) request(method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	return c.doRequest(req)
}

func (c *APIClient) doRequest(req *http.Request) ([]byte, error) {
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d %s, Response: %s", resp.StatusCode, resp.Status, string(data))
	}

	return data, nil
}
