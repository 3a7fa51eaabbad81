package providers

import (
	"encoding/json"

	"github.com/sendgrid/rest"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// ZeroBounceBaseURL is ZeroBounce's public API host.
const ZeroBounceBaseURL = "https://api.zerobounce.net"

type zeroBounce struct {
	baseURL string
}

// NewZeroBounce returns the ZeroBounce validate adapter. An empty baseURL
// selects ZeroBounceBaseURL.
func NewZeroBounce(baseURL string) Provider {
	return &zeroBounce{baseURL: baseOrDefault(baseURL, ZeroBounceBaseURL)}
}

func (z *zeroBounce) Name() domain.ProviderName { return domain.ProviderZeroBounce }

func (z *zeroBounce) Request(address, credential string) rest.Request {
	return rest.Request{
		Method:  rest.Get,
		BaseURL: z.baseURL + "/v2/validate",
		QueryParams: map[string]string{
			"api_key": credential,
			"email":   address,
		},
	}
}

// ErrorMessage returns ZeroBounce's "error" field, which it also sends with HTTP 200.
func (z *zeroBounce) ErrorMessage(body []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error
}

func (z *zeroBounce) Decode(body []byte) (domain.ProviderResult, error) {
	var r domain.ZeroBounceResult
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}
