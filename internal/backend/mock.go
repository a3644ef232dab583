package backend

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"
)

var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// MockOptions tunes the mock backend. The zero value gives a fixed OTP,
// no delays and no resend cooldown, which is what tests want.
type MockOptions struct {
	OTP            string        // issued code; empty = random 6 digits per issue
	ResendCooldown time.Duration // min gap between OTP issues
	VerifyDelay    time.Duration
	PredictDelay   time.Duration
	Now            func() time.Time
	Seed           int64 // rng seed for codes and confidences; 0 = time-based
}

// Mock simulates the portal server in memory. It mirrors the live server's
// observable behavior: same validation of mobile numbers, same resend
// cooldown, same message shapes, so mock and live reject the same inputs.
type Mock struct {
	mu        sync.Mutex
	opts      MockOptions
	rng       *rand.Rand
	otp       string
	lastIssue time.Time
	mobile    string
}

// NewMock creates a mock backend.
func NewMock(opts MockOptions) *Mock {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mock{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// IssuedOTP returns the currently pending code, for display in mock-mode
// messages. Empty when nothing is pending.
func (m *Mock) IssuedOTP() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.otp
}

func (m *Mock) RequestOTP(ctx context.Context, info SignupInfo, registering bool) (OTPReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !mobilePattern.MatchString(info.Mobile) {
		return OTPReceipt{}, &ServerError{Message: "Enter a valid 10-digit mobile number."}
	}
	if err := m.cooldownLocked(); err != nil {
		return OTPReceipt{}, err
	}

	m.mobile = info.Mobile
	return m.issueLocked()
}

func (m *Mock) ResendOTP(ctx context.Context) (OTPReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.otp == "" {
		return OTPReceipt{}, &ServerError{Message: "No OTP request found. Submit the form first."}
	}
	if err := m.cooldownLocked(); err != nil {
		return OTPReceipt{}, err
	}
	return m.issueLocked()
}

func (m *Mock) VerifyOTP(ctx context.Context, code string) (string, error) {
	if err := sleepCtx(ctx, m.opts.VerifyDelay); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.otp == "" {
		return "", &ServerError{Message: "No OTP was requested."}
	}
	if code != m.otp {
		return "", &ServerError{Message: fmt.Sprintf("Invalid OTP. Please use the mock code: %s", m.otp)}
	}

	m.otp = ""
	m.lastIssue = time.Time{}
	return "Verification successful (Mock)!", nil
}

func (m *Mock) SaveCattle(ctx context.Context, rec CattleSubmission) (string, error) {
	if rec.ID == "" {
		return "", &ServerError{Message: "Cattle ID is required."}
	}
	if rec.Age <= 0 {
		return "", &ServerError{Message: "Age must be a positive number."}
	}
	return "Cattle details saved successfully (Mock).", nil
}

func (m *Mock) Predict(ctx context.Context, req PredictionRequest) (PredictionResult, error) {
	if len(req.Image) == 0 {
		return PredictionResult{}, &ServerError{Message: "No file provided."}
	}
	if req.DiseaseType == "" {
		return PredictionResult{}, &ServerError{Message: "Select a disease type."}
	}
	if err := sleepCtx(ctx, m.opts.PredictDelay); err != nil {
		return PredictionResult{}, err
	}

	m.mu.Lock()
	confidence := 50 + m.rng.Float64()*50
	m.mu.Unlock()

	label := LabelHealthy
	if confidence > 75 {
		label = LabelDiseased
	}
	return PredictionResult{Label: label, Confidence: confidence}, nil
}

func (m *Mock) UpdateProfile(ctx context.Context, fields ProfileUpdate) (ProfileUpdate, error) {
	return fields, nil
}

// cooldownLocked enforces the gap between OTP issues, matching the live
// server's throttle.
func (m *Mock) cooldownLocked() error {
	if m.opts.ResendCooldown <= 0 || m.lastIssue.IsZero() {
		return nil
	}
	elapsed := m.opts.Now().Sub(m.lastIssue)
	if elapsed < m.opts.ResendCooldown {
		wait := int((m.opts.ResendCooldown - elapsed).Round(time.Second).Seconds())
		if wait < 1 {
			wait = 1
		}
		return &ServerError{Message: fmt.Sprintf("Please wait %d seconds before requesting a new OTP.", wait)}
	}
	return nil
}

// issueLocked generates a fresh code, replacing any pending one.
func (m *Mock) issueLocked() (OTPReceipt, error) {
	code := m.opts.OTP
	if code == "" {
		code = fmt.Sprintf("%06d", m.rng.Intn(1000000))
	}
	m.otp = code
	m.lastIssue = m.opts.Now()
	return OTPReceipt{
		Message: fmt.Sprintf("OTP sent successfully to %s. (Use MOCK OTP: %s)", m.mobile, code),
		Code:    code,
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
