package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Claims is the identity resolved from a third-party provider ID token.
type Claims struct {
	Email         string
	Name          string
	EmailVerified bool
	Picture       string
	PhoneNumber   string
}

// Verifier exchanges a provider ID token for identity claims.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Claims, error)
}

// HTTPVerifier resolves ID tokens through the Google Identity Toolkit
// accounts:lookup endpoint.
type HTTPVerifier struct {
	APIKey string
	Client *http.Client
}

const lookupURL = "https://identitytoolkit.googleapis.com/v1/accounts:lookup"

type lookupResponse struct {
	Users []struct {
		Email         string `json:"email"`
		DisplayName   string `json:"displayName"`
		PhotoURL      string `json:"photoUrl"`
		EmailVerified bool   `json:"emailVerified"`
		PhoneNumber   string `json:"phoneNumber"`
	} `json:"users"`
}

func (v *HTTPVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	if v.Client == nil {
		v.Client = &http.Client{Timeout: 10 * time.Second}
	}

	body, _ := json.Marshal(map[string]string{"idToken": idToken})
	url := fmt.Sprintf("%s?key=%s", lookupURL, v.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity lookup request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity lookup: status %d body: %s", resp.StatusCode, string(respBody))
	}

	var data lookupResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("identity lookup decode: %w", err)
	}
	if len(data.Users) == 0 {
		return nil, fmt.Errorf("identity lookup: no user for token")
	}

	u := data.Users[0]
	return &Claims{
		Email:         u.Email,
		Name:          u.DisplayName,
		EmailVerified: u.EmailVerified,
		Picture:       u.PhotoURL,
		PhoneNumber:   u.PhoneNumber,
	}, nil
}
