package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/avrlabs/cattleport/internal/errors"
	"github.com/avrlabs/cattleport/internal/logging"
)

// HTTP talks to the real portal API. The server tracks the OTP flow in its
// own session, so the client carries cookies across requests.
type HTTP struct {
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewHTTP creates a live backend for the given base URL.
func NewHTTP(baseURL string, timeout time.Duration, logger *logging.Logger) (*HTTP, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		log: logger,
	}, nil
}

// envelope covers every response shape the API produces. Absent fields
// decode to zero values.
type envelope struct {
	Message  string   `json:"message"`
	Error    string   `json:"error"`
	Errors   []string `json:"errors"`
	Warning  string   `json:"warning"`
	Label    string   `json:"predicted_label"`
	Conf     float64  `json:"confidence"`
	Name     string   `json:"name"`
	Village  string   `json:"village"`
	Mandal   string   `json:"mandal"`
	District string   `json:"district"`
}

func (h *HTTP) RequestOTP(ctx context.Context, info SignupInfo, registering bool) (OTPReceipt, error) {
	op := "login"
	if registering {
		op = "registration"
	}
	env, err := h.doJSON(ctx, http.MethodPost, "/api/submit_user_info", info, op)
	if err != nil {
		return OTPReceipt{}, err
	}
	return OTPReceipt{Message: env.Message}, nil
}

func (h *HTTP) VerifyOTP(ctx context.Context, code string) (string, error) {
	payload := map[string]string{"otp": code}
	env, err := h.doJSON(ctx, http.MethodPost, "/api/verify_otp", payload, "OTP verification")
	if err != nil {
		return "", err
	}
	if env.Message == "" {
		return "Verification successful!", nil
	}
	return env.Message, nil
}

func (h *HTTP) ResendOTP(ctx context.Context) (OTPReceipt, error) {
	env, err := h.doJSON(ctx, http.MethodPost, "/api/resend_otp", nil, "OTP resend")
	if err != nil {
		return OTPReceipt{}, err
	}
	return OTPReceipt{Message: env.Message}, nil
}

func (h *HTTP) SaveCattle(ctx context.Context, rec CattleSubmission) (string, error) {
	env, err := h.doJSON(ctx, http.MethodPost, "/api/submit_cattle", rec, "cattle save")
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (h *HTTP) Predict(ctx context.Context, req PredictionRequest) (PredictionResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("disease_type", req.DiseaseType); err != nil {
		return PredictionResult{}, fmt.Errorf("encode disease_type: %w", err)
	}
	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("encode file: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return PredictionResult{}, fmt.Errorf("encode file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return PredictionResult{}, fmt.Errorf("finish multipart body: %w", err)
	}

	env, err := h.do(ctx, http.MethodPost, "/api/predict", &body, writer.FormDataContentType(), "prediction")
	if err != nil {
		return PredictionResult{}, err
	}
	return PredictionResult{Label: env.Label, Confidence: env.Conf}, nil
}

func (h *HTTP) UpdateProfile(ctx context.Context, fields ProfileUpdate) (ProfileUpdate, error) {
	env, err := h.doJSON(ctx, http.MethodPut, "/api/update_profile", fields, "profile update")
	if err != nil {
		return ProfileUpdate{}, err
	}

	// The server echoes the stored fields; fall back to what was submitted
	// for anything it omits.
	updated := fields
	if env.Name != "" {
		updated.Name = env.Name
	}
	if env.Village != "" {
		updated.Village = env.Village
	}
	if env.Mandal != "" {
		updated.Mandal = env.Mandal
	}
	if env.District != "" {
		updated.District = env.District
	}
	return updated, nil
}

func (h *HTTP) doJSON(ctx context.Context, method, path string, payload any, operation string) (envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return h.do(ctx, method, path, body, "application/json", operation)
}

func (h *HTTP) do(ctx context.Context, method, path string, body io.Reader, contentType, operation string) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		if h.log != nil {
			h.log.LogRequest(operation, path, false, time.Since(start), err)
		}
		return envelope{}, apperrors.WrapNetworkError(err, h.baseURL, operation)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if h.log != nil {
		h.log.LogRequest(operation, path, ok, time.Since(start), nil)
	}

	if !ok {
		return envelope{}, serverErrorFrom(env, resp.StatusCode, operation)
	}
	if decodeErr != nil && decodeErr != io.EOF {
		return envelope{}, apperrors.WrapNetworkError(
			fmt.Errorf("malformed response: %w", decodeErr), h.baseURL, operation)
	}
	return env, nil
}

// serverErrorFrom maps a non-2xx body to a ServerError, preferring the
// structured fields the API defines: errors:[...], then error, then warning.
func serverErrorFrom(env envelope, status int, operation string) error {
	se := &ServerError{Fields: env.Errors}
	switch {
	case env.Error != "":
		se.Message = env.Error
	case env.Warning != "":
		se.Message = env.Warning
		se.Warning = true
	case len(env.Errors) == 0:
		se.Message = fmt.Sprintf("%s failed (HTTP %d)", operation, status)
	}
	return se
}
