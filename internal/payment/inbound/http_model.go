package inbound

type InitializeRequest struct {
	CourseID int64 `json:"course_id,string"`
}

type InitializeResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AmountMinor      int64  `json:"amount_minor"`
	Currency         string `json:"currency"`
}

func (InitializeResponse) Message() string {
	return "Payment initialized. Complete the checkout to access the course."
}

type VerifyResponse struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}
