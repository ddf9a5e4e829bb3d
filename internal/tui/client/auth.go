package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codequest532/vyrona-social/internal/utils"
)

// LoginOrRegister tries to sign in and falls back to registration when the
// account does not exist yet. Bad credentials never trigger registration.
func (c *APIClient) LoginOrRegister(username, password string) (map[string]any, error) {
	data := map[string]any{
		"name":     username,
		"password": password,
	}

	res, err := c.post("/users/login", data)
	if err == nil {
		return res, nil
	}

	if strings.Contains(err.Error(), "invalid username or password") && !c.userExists(username) {
		return c.post("/users", data)
	}

	return nil, err
}

func (c *APIClient) userExists(username string) bool {
	data, err := c.get("/users")
	if err != nil {
		return false
	}
	return strings.Contains(string(data), fmt.Sprintf("%q", username))
}

func (c *APIClient) Logout() error {
	c.accessToken = ""
	c.refreshToken = ""
	return utils.SaveTokenPair(utils.TokenPair{})
}

func isUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "HTTP error: 401")
}

func (c *APIClient) refreshTokens() error {
	// Goes through request directly: a failing refresh must not retry itself.
	payload, err := json.Marshal(map[string]string{"refreshToken": c.refreshToken})
	if err != nil {
		return err
	}
	data, err := c.request("POST", "/users/refresh", payload)
	if err != nil {
		return err
	}
	var res map[string]any
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}

	newAccess, _ := res["AccessToken"].(string)
	newRefresh, _ := res["RefreshToken"].(string)
	if newAccess == "" || newRefresh == "" {
		return fmt.Errorf("refresh failed: missing tokens")
	}

	c.accessToken = newAccess
	c.refreshToken = newRefresh
	_ = utils.SaveTokenPair(utils.TokenPair{AccessToken: newAccess, RefreshToken: newRefresh})
	return nil
}
