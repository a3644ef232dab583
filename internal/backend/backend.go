package backend

// Backend abstracts the portal's auth+data server so the controller never
// branches on mock vs live. Two implementations exist: Mock (in-memory
// simulation) and HTTP (the real REST API).

import (
	"context"
	"errors"
	"strings"
)

// Prediction labels returned by the model endpoint.
const (
	LabelDiseased = "Diseased"
	LabelHealthy  = "Healthy"
)

// SignupInfo carries the registration/login form fields. A login request
// sends only the mobile number; the remaining fields stay blank.
type SignupInfo struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Village  string `json:"village"`
	Mandal   string `json:"mandal"`
	District string `json:"district"`
}

// OTPReceipt acknowledges an issued OTP. Code is only populated by the mock
// backend; the live server never returns the code to the client.
type OTPReceipt struct {
	Message string
	Code    string
}

// CattleSubmission is the predictor wizard's step-1 payload.
type CattleSubmission struct {
	ID     string `json:"cattle_id"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

// PredictionRequest is the step-2 payload: an accepted image plus the
// selected condition category.
type PredictionRequest struct {
	DiseaseType string
	FileName    string
	Image       []byte
}

// PredictionResult is the model's answer.
type PredictionResult struct {
	Label      string  `json:"predicted_label"`
	Confidence float64 `json:"confidence"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Village  string `json:"village"`
	Mandal   string `json:"mandal"`
	District string `json:"district"`
}

// Backend is the auth+data capability the controller depends on.
type Backend interface {
	// RequestOTP validates the signup info server-side and issues an OTP.
	RequestOTP(ctx context.Context, info SignupInfo, registering bool) (OTPReceipt, error)
	// VerifyOTP checks a submitted code against the issued one. The returned
	// string is the server's success message.
	VerifyOTP(ctx context.Context, code string) (string, error)
	// ResendOTP re-issues the pending OTP without re-submitting the form.
	ResendOTP(ctx context.Context) (OTPReceipt, error)
	// SaveCattle persists the cattle details, returning the server message.
	SaveCattle(ctx context.Context, rec CattleSubmission) (string, error)
	// Predict runs the disease model over the uploaded image.
	Predict(ctx context.Context, req PredictionRequest) (PredictionResult, error)
	// UpdateProfile saves edited profile fields and returns the stored values.
	UpdateProfile(ctx context.Context, fields ProfileUpdate) (ProfileUpdate, error)
}

// ServerError is a structured rejection from the backend: the request was
// delivered and refused. Distinct from transport failures, which surface as
// wrapped network errors.
type ServerError struct {
	Message string
	Fields  []string // per-field messages when the server returns errors:[...]
	Warning bool     // true when the server answered with {warning} instead of {error}
}

func (e *ServerError) Error() string {
	if len(e.Fields) > 0 {
		return strings.Join(e.Fields, "\n")
	}
	return e.Message
}

// AsServerError unwraps err to a *ServerError if it is one.
func AsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
