package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	apihttp "github.com/animabing/animabing/internal/api/http"
	"github.com/animabing/animabing/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success *bool  `json:"success"`
	Token   string `json:"token"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

// Login exchanges admin credentials for a bearer token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", &ValidationError{Fields: []FieldError{{Field: "username", Message: "Username and password are required"}}}
	}

	resp, err := c.httpClient.Post(ctx, c.BaseURL()+"/admin/login", loginRequest{Username: username, Password: password}, nil)
	if err != nil {
		return "", c.networkError("admin login", resp, err)
	}

	var out loginResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", &NetworkError{Op: "admin login", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	token := firstNonEmpty(out.Token, out.Data.Token)
	if token == "" {
		return "", &NetworkError{Op: "admin login", Err: fmt.Errorf("response carried no token")}
	}
	return token, nil
}

// AdminReports lists submitted reports from the protected admin API
func (c *Client) AdminReports(ctx context.Context, token string) ([]models.Report, error) {
	cfg := c.httpConfig
	cfg.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	authed := apihttp.NewClient(cfg)

	resp, err := authed.Get(ctx, c.BaseURL()+"/admin/protected/reports", nil)
	if err != nil {
		return nil, c.networkError("list reports", resp, err)
	}

	return parseReports(resp.Body()), nil
}

// parseReports accepts a bare array or a {success, data} envelope
func parseReports(body []byte) []models.Report {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return []models.Report{}
		}
		body = bytes.TrimSpace(env.Data)
	}

	var reports []models.Report
	if len(body) == 0 || body[0] != '[' {
		return []models.Report{}
	}
	if err := json.Unmarshal(body, &reports); err != nil {
		return []models.Report{}
	}
	return reports
}

// TokenExpiry reads the exp claim of an admin token without verifying its
// signature; verification is the server's job.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpired reports whether a stored token has passed its exp claim.
// Tokens without an exp claim never expire locally.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return !exp.IsZero() && !now.Before(exp)
}
