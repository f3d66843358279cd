// Package validation talks to the external code authority that checks HS
// codes and tracking numbers, and falls back to a local format check when
// the authority is slow or unreachable.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/errs"
)

const serviceName = "code authority"

// Authority answers whether a code is known. An error means no answer was
// obtained.
type Authority interface {
	Check(ctx context.Context, codeType services.CodeType, code string) (services.CodeCheck, error)
}

type checkRequest struct {
	CodeType string `json:"code_type"`
	Code     string `json:"code"`
}

type checkResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// HTTPAuthority posts {code_type, code} to <baseURL>/validate and expects
// {valid, message} back.
type HTTPAuthority struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAuthority(baseURL string, client *http.Client) (*HTTPAuthority, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAuthority{baseURL: strings.TrimRight(baseURL, "/"), client: client}, nil
}

func (a *HTTPAuthority) Check(ctx context.Context, codeType services.CodeType, code string) (services.CodeCheck, error) {
	body, err := json.Marshal(checkRequest{CodeType: string(codeType), Code: code})
	if err != nil {
		return services.CodeCheck{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		return services.CodeCheck{}, errs.NewExternalServiceError(serviceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return services.CodeCheck{}, errs.NewExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.CodeCheck{}, errs.NewExternalServiceError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out checkResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return services.CodeCheck{}, errs.NewExternalServiceError(serviceName, err)
	}
	return services.CodeCheck{Valid: out.Valid, Message: out.Message}, nil
}
