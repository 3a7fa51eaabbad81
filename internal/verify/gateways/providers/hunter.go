package providers

import (
	"encoding/json"
	"strings"

	"github.com/sendgrid/rest"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// HunterBaseURL is Hunter's public API host.
const HunterBaseURL = "https://api.hunter.io"

type hunter struct {
	baseURL string
}

// NewHunter returns the Hunter email-verifier adapter. An empty baseURL
// selects HunterBaseURL.
func NewHunter(baseURL string) Provider {
	return &hunter{baseURL: baseOrDefault(baseURL, HunterBaseURL)}
}

func (h *hunter) Name() domain.ProviderName { return domain.ProviderHunter }

func (h *hunter) Request(address, credential string) rest.Request {
	return rest.Request{
		Method:  rest.Get,
		BaseURL: h.baseURL + "/v2/email-verifier",
		QueryParams: map[string]string{
			"email":   address,
			"api_key": credential,
		},
	}
}

type hunterEnvelope struct {
	Data   *domain.HunterResult `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Code    int    `json:"code"`
		Details string `json:"details"`
	} `json:"errors"`
}

// ErrorMessage returns the details of the first entry of Hunter's errors array.
func (h *hunter) ErrorMessage(body []byte) string {
	var env hunterEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	for _, e := range env.Errors {
		if e.Details != "" {
			return e.Details
		}
		if e.ID != "" {
			return e.ID
		}
	}
	return ""
}

func (h *hunter) Decode(body []byte) (domain.ProviderResult, error) {
	var env hunterEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	var r domain.HunterResult
	if env.Data != nil {
		r = *env.Data
	}
	if r.Sources == nil {
		r.Sources = []domain.HunterSource{}
	}
	return r, nil
}

func baseOrDefault(base, def string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return def
	}
	return base
}
