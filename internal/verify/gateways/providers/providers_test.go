package providers

import (
	"context"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

func TestRequests(t *testing.T) {
	tests := []struct {
		provider Provider
		path     string
		params   map[string]string
	}{
		{NewHunter("https://h.example/"), "https://h.example/v2/email-verifier", map[string]string{"email": "a@b.com", "api_key": "k"}},
		{NewNeverBounce("https://nb.example"), "https://nb.example/v4/single/check", map[string]string{"key": "k", "email": "a@b.com"}},
		{NewZeroBounce(""), ZeroBounceBaseURL + "/v2/validate", map[string]string{"api_key": "k", "email": "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider.Name()), func(t *testing.T) {
			req := tt.provider.Request("a@b.com", "k")
			assert.Equal(t, rest.Get, req.Method)
			assert.Equal(t, tt.path, req.BaseURL)
			assert.Equal(t, tt.params, req.QueryParams)
		})
	}
}

func TestHunter_QueryParametersOnTheWire(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"data":{}}`)
	p := NewHunter(api.srv.URL)
	newTestClient(0, p).Verify(context.Background(), p, "john+x@example.com", "hk")

	q := api.lastQuery()
	assert.Equal(t, "john+x@example.com", q.Get("email"))
	assert.Equal(t, "hk", q.Get("api_key"))
}

func TestHunter_Decode(t *testing.T) {
	body := `{"data":{"status":"valid","result":"deliverable","score":92,"email":"a@b.com","regexp":true,
		"gibberish":false,"disposable":false,"webmail":true,"mx_records":true,"smtp_server":true,
		"smtp_check":true,"accept_all":false,"block":false,
		"sources":[{"domain":"b.com","uri":"http://b.com/team","still_on_page":true}]},"meta":{"params":{}}}`
	r, err := NewHunter("").Decode([]byte(body))
	require.NoError(t, err)
	h := r.(domain.HunterResult)
	assert.Equal(t, 92, h.Score)
	assert.Equal(t, "deliverable", h.Deliverability())
	assert.True(t, h.Regexp)
	assert.True(t, h.Webmail)
	require.Len(t, h.Sources, 1)
	assert.Equal(t, "http://b.com/team", h.Sources[0].URI)
	assert.Empty(t, h.Failure())
}

func TestHunter_DecodeDefaults(t *testing.T) {
	r, err := NewHunter("").Decode([]byte(`{"data":{"status":"accept_all"}}`))
	require.NoError(t, err)
	h := r.(domain.HunterResult)
	assert.Zero(t, h.Score)
	assert.False(t, h.SMTPCheck)
	assert.NotNil(t, h.Sources)
	assert.Empty(t, h.Sources)
	assert.Equal(t, "accept_all", h.Deliverability())

	r, err = NewHunter("").Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, domain.HunterResult{Sources: []domain.HunterSource{}}, r)
}

func TestHunter_ErrorMessage(t *testing.T) {
	h := NewHunter("")
	assert.Equal(t, "bad key", h.ErrorMessage([]byte(`{"errors":[{"details":"bad key"}]}`)))
	assert.Equal(t, "wrong_params", h.ErrorMessage([]byte(`{"errors":[{"id":"wrong_params"}]}`)))
	assert.Empty(t, h.ErrorMessage([]byte(`{"data":{}}`)))
	assert.Empty(t, h.ErrorMessage([]byte(`not json`)))
}

func TestNeverBounce_Decode(t *testing.T) {
	body := `{"status":"success","result":"catchall","result_code":3,"flags":["has_dns","has_dns_mx"],
		"suggested_correction":"","credits_info":{"paid_credits_used":1,"free_credits_remaining":999},"execution_time":409}`
	r, err := NewNeverBounce("").Decode([]byte(body))
	require.NoError(t, err)
	nb := r.(domain.NeverBounceResult)
	assert.Equal(t, "catchall", nb.Deliverability())
	assert.Equal(t, 3, nb.ResultCode)
	assert.True(t, nb.HasFlag("has_dns_mx"))
	assert.False(t, nb.HasFlag("bad_syntax"))
	assert.Equal(t, 1, nb.CreditsInfo.PaidCreditsUsed)
	assert.Equal(t, 999, nb.CreditsInfo.FreeCreditsRemaining)
	assert.Equal(t, 409, nb.ExecutionTime)

	r, err = NewNeverBounce("").Decode([]byte(`{"status":"success","result":"unknown"}`))
	require.NoError(t, err)
	nb = r.(domain.NeverBounceResult)
	assert.Equal(t, []string{}, nb.Flags)
	assert.Zero(t, nb.ResultCode)
	assert.Empty(t, nb.SuggestedCorrection)
}

func TestNeverBounce_ErrorMessage(t *testing.T) {
	nb := NewNeverBounce("")
	assert.Empty(t, nb.ErrorMessage([]byte(`{"status":"success","result":"valid"}`)))
	assert.Empty(t, nb.ErrorMessage([]byte(`{"result":"valid"}`)))
	assert.Equal(t, "nope", nb.ErrorMessage([]byte(`{"status":"general_failure","message":"nope"}`)))
}

func TestZeroBounce_Decode(t *testing.T) {
	body := `{"address":"a@b.com","status":"valid","sub_status":"","free_email":true,"did_you_mean":null,
		"account":"a","domain":"b.com","domain_age_days":"9692","smtp_provider":"google","mx_found":"true",
		"mx_record":"mx.b.com","firstname":"Jane","lastname":"Doe","gender":"female","country":"US",
		"region":"CA","city":"SF","zipcode":"94105","processed_at":"2024-08-13 12:00:00.000"}`
	r, err := NewZeroBounce("").Decode([]byte(body))
	require.NoError(t, err)
	zb := r.(domain.ZeroBounceResult)
	assert.Equal(t, "valid", zb.Deliverability())
	assert.True(t, zb.FreeEmail)
	assert.True(t, zb.HasMX())
	assert.Equal(t, "mx.b.com", zb.MXRecord)
	assert.Equal(t, "Jane", zb.Firstname)
	assert.Equal(t, "94105", zb.Zipcode)
	assert.Empty(t, zb.DidYouMean)

	r, err = NewZeroBounce("").Decode([]byte(`{"status":"invalid"}`))
	require.NoError(t, err)
	zb = r.(domain.ZeroBounceResult)
	assert.False(t, zb.HasMX())
	assert.Empty(t, zb.Country)
}

func TestZeroBounce_ErrorMessage(t *testing.T) {
	zb := NewZeroBounce("")
	assert.Equal(t, "Invalid API Key", zb.ErrorMessage([]byte(`{"error":"Invalid API Key"}`)))
	assert.Empty(t, zb.ErrorMessage([]byte(`{"status":"valid"}`)))
}

func TestVerify_DecodedResultsFlowThrough(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"status":"success","result":"disposable","flags":["disposable_email"]}`)
	p := NewNeverBounce(api.srv.URL)
	r := newTestClient(0, p).Verify(context.Background(), p, "x@mailinator.com", "k")
	nb, ok := r.(domain.NeverBounceResult)
	require.True(t, ok)
	assert.Equal(t, "disposable", nb.Result)
	assert.Equal(t, "k", api.lastQuery().Get("key"))
}
