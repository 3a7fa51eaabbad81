package domain

// ProviderResult is the outcome of one external verification call. It is one of
// HunterResult, NeverBounceResult, ZeroBounceResult or ErrorResult.
type ProviderResult interface {
	// Provider names the service that produced the result.
	Provider() ProviderName
	// Deliverability is the provider's own classification, or "error".
	Deliverability() string
	// Failure returns a human-readable error message, empty for successful results.
	Failure() string

	providerResult()
}

// DeliverabilityError is reported by ErrorResult.Deliverability.
const DeliverabilityError = "error"

// ErrorResult is returned for every failed provider call.
type ErrorResult struct {
	Source  ProviderName `json:"provider"`
	Kind    ErrorKind    `json:"kind"`
	Message string       `json:"message"`
}

// NewErrorResult builds an ErrorResult.
func NewErrorResult(p ProviderName, kind ErrorKind, msg string) ErrorResult {
	return ErrorResult{Source: p, Kind: kind, Message: msg}
}

func (r ErrorResult) Provider() ProviderName { return r.Source }
func (r ErrorResult) Deliverability() string { return DeliverabilityError }
func (r ErrorResult) Failure() string        { return r.Message }
func (r ErrorResult) providerResult()        {}

// Error implements the error interface so an ErrorResult can be wrapped or matched.
func (r ErrorResult) Error() string { return r.Message }

// Unwrap lets errors.Is match the taxonomy sentinel.
func (r ErrorResult) Unwrap() error { return r.Kind.Sentinel() }

// HunterSource is a public page on which Hunter found the address.
type HunterSource struct {
	Domain      string `json:"domain"`
	URI         string `json:"uri"`
	ExtractedOn string `json:"extracted_on"`
	LastSeenOn  string `json:"last_seen_on"`
	StillOnPage bool   `json:"still_on_page"`
}

// HunterResult holds the fields of Hunter's email-verifier response.
type HunterResult struct {
	Email      string         `json:"email"`
	Status     string         `json:"status"`
	Result     string         `json:"result"`
	Score      int            `json:"score"`
	Regexp     bool           `json:"regexp"`
	Gibberish  bool           `json:"gibberish"`
	Disposable bool           `json:"disposable"`
	Webmail    bool           `json:"webmail"`
	MXRecords  bool           `json:"mx_records"`
	SMTPServer bool           `json:"smtp_server"`
	SMTPCheck  bool           `json:"smtp_check"`
	AcceptAll  bool           `json:"accept_all"`
	Block      bool           `json:"block"`
	Sources    []HunterSource `json:"sources"`
}

func (r HunterResult) Provider() ProviderName { return ProviderHunter }
func (r HunterResult) Failure() string        { return "" }
func (r HunterResult) providerResult()        {}

// Deliverability returns Hunter's result, falling back to its status field.
func (r HunterResult) Deliverability() string {
	if r.Result != "" {
		return r.Result
	}
	return r.Status
}

// NeverBounceCredits reports the account balance returned with each check.
type NeverBounceCredits struct {
	PaidCreditsUsed      int `json:"paid_credits_used"`
	FreeCreditsUsed      int `json:"free_credits_used"`
	PaidCreditsRemaining int `json:"paid_credits_remaining"`
	FreeCreditsRemaining int `json:"free_credits_remaining"`
}

// NeverBounceResult holds the fields of NeverBounce's single-check response.
type NeverBounceResult struct {
	Result              string             `json:"result"`
	ResultCode          int                `json:"result_code"`
	Flags               []string           `json:"flags"`
	SuggestedCorrection string             `json:"suggested_correction"`
	CreditsInfo         NeverBounceCredits `json:"credits_info"`
	ExecutionTime       int                `json:"execution_time"`
}

func (r NeverBounceResult) Provider() ProviderName { return ProviderNeverBounce }
func (r NeverBounceResult) Deliverability() string { return r.Result }
func (r NeverBounceResult) Failure() string        { return "" }
func (r NeverBounceResult) providerResult()        {}

// HasFlag reports whether NeverBounce attached the named flag.
func (r NeverBounceResult) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// ZeroBounceResult holds the fields of ZeroBounce's validate response.
// Identity fields are passed through as received.
type ZeroBounceResult struct {
	Address      string `json:"address"`
	Status       string `json:"status"`
	SubStatus    string `json:"sub_status"`
	FreeEmail    bool   `json:"free_email"`
	DidYouMean   string `json:"did_you_mean"`
	Account      string `json:"account"`
	Domain       string `json:"domain"`
	SMTPProvider string `json:"smtp_provider"`
	MXFound      string `json:"mx_found"`
	MXRecord     string `json:"mx_record"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Gender       string `json:"gender"`
	Country      string `json:"country"`
	Region       string `json:"region"`
	City         string `json:"city"`
	Zipcode      string `json:"zipcode"`
	ProcessedAt  string `json:"processed_at"`
}

func (r ZeroBounceResult) Provider() ProviderName { return ProviderZeroBounce }
func (r ZeroBounceResult) Deliverability() string { return r.Status }
func (r ZeroBounceResult) Failure() string        { return "" }
func (r ZeroBounceResult) providerResult()        {}

// HasMX interprets ZeroBounce's textual mx_found flag.
func (r ZeroBounceResult) HasMX() bool { return r.MXFound == "true" }

var (
	_ ProviderResult = ErrorResult{}
	_ ProviderResult = HunterResult{}
	_ ProviderResult = NeverBounceResult{}
	_ ProviderResult = ZeroBounceResult{}
)
