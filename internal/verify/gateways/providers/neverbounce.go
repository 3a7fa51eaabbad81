package providers

import (
	"encoding/json"

	"github.com/sendgrid/rest"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// NeverBounceBaseURL is NeverBounce's public API host.
const NeverBounceBaseURL = "https://api.neverbounce.com"

const neverBounceSuccess = "success"

type neverBounce struct {
	baseURL string
}

// NewNeverBounce returns the NeverBounce single-check adapter. An empty
// baseURL selects NeverBounceBaseURL.
func NewNeverBounce(baseURL string) Provider {
	return &neverBounce{baseURL: baseOrDefault(baseURL, NeverBounceBaseURL)}
}

func (n *neverBounce) Name() domain.ProviderName { return domain.ProviderNeverBounce }

func (n *neverBounce) Request(address, credential string) rest.Request {
	return rest.Request{
		Method:  rest.Get,
		BaseURL: n.baseURL + "/v4/single/check",
		QueryParams: map[string]string{
			"key":   credential,
			"email": address,
		},
	}
}

// ErrorMessage reports NeverBounce's envelope error. Auth and quota failures
// arrive with HTTP 200 and a status other than "success".
func (n *neverBounce) ErrorMessage(body []byte) string {
	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Status == "" || env.Status == neverBounceSuccess {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Status
}

func (n *neverBounce) Decode(body []byte) (domain.ProviderResult, error) {
	var r domain.NeverBounceResult
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	if r.Flags == nil {
		r.Flags = []string{}
	}
	return r, nil
}
