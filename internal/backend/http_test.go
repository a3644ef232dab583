package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/avrlabs/cattleport/internal/errors"
)

func newTestHTTP(t *testing.T, handler http.Handler) (*HTTP, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	h, err := NewHTTP(srv.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("NewHTTP failed: %v", err)
	}
	return h, srv
}

func TestRequestOTPPostsSignupInfo(t *testing.T) {
	var got SignupInfo
	var path, requestID string
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		requestID = r.Header.Get("X-Request-ID")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent"})
	}))

	receipt, err := h.RequestOTP(context.Background(), SignupInfo{Name: "Test", Mobile: "9876543210"}, true)
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if path != "/api/submit_user_info" {
		t.Errorf("wrong path %q", path)
	}
	if requestID == "" {
		t.Error("X-Request-ID header should be set")
	}
	if got.Mobile != "9876543210" {
		t.Errorf("mobile not sent: %+v", got)
	}
	if receipt.Message != "OTP sent" {
		t.Errorf("unexpected message %q", receipt.Message)
	}
	if receipt.Code != "" {
		t.Error("live backend must never surface the OTP code")
	}
}

func TestServerErrorFieldsJoined(t *testing.T) {
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []string{"Name is required.", "Enter a valid 10-digit mobile number."},
		})
	}))

	_, err := h.RequestOTP(context.Background(), SignupInfo{}, true)
	se, ok := AsServerError(err)
	if !ok {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if len(se.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", se.Fields)
	}
	if !strings.Contains(se.Error(), "Name is required.\nEnter a valid") {
		t.Fatalf("field errors should join with newlines: %q", se.Error())
	}
}

func TestVerifyOTPDefaultsSuccessMessage(t *testing.T) {
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{}")
	}))
	msg, err := h.VerifyOTP(context.Background(), "123456")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if msg != "Verification successful!" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestVerifyOTPServerRejection(t *testing.T) {
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired OTP."})
	}))
	_, err := h.VerifyOTP(context.Background(), "000000")
	se, ok := AsServerError(err)
	if !ok || se.Message != "Invalid or expired OTP." {
		t.Fatalf("expected server rejection, got %v", err)
	}
}

func TestSessionCookiesCarriedAcrossRequests(t *testing.T) {
	var sawCookie bool
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/submit_user_info":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent"})
		case "/api/verify_otp":
			if c, err := r.Cookie("session"); err == nil && c.Value == "abc123" {
				sawCookie = true
			}
			io.WriteString(w, "{}")
		}
	}))

	if _, err := h.RequestOTP(context.Background(), SignupInfo{Mobile: "9876543210"}, false); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if _, err := h.VerifyOTP(context.Background(), "123456"); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !sawCookie {
		t.Fatal("session cookie from the OTP request should accompany verification")
	}
}

func TestPredictSendsMultipart(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("disease_type"); got != "Lumpy Skin" {
			t.Errorf("disease_type = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "cow.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if len(data) != len(image) {
			t.Errorf("image bytes: got %d want %d", len(data), len(image))
		}
		json.NewEncoder(w).Encode(map[string]any{"predicted_label": "Diseased", "confidence": 88.5})
	}))

	res, err := h.Predict(context.Background(), PredictionRequest{
		DiseaseType: "Lumpy Skin",
		FileName:    "cow.jpg",
		Image:       image,
	})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if res.Label != LabelDiseased || res.Confidence != 88.5 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPredictWarningSurfaced(t *testing.T) {
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"warning": "Image does not look like cattle."})
	}))
	_, err := h.Predict(context.Background(), PredictionRequest{DiseaseType: "FMD", FileName: "x.png", Image: []byte{1}})
	se, ok := AsServerError(err)
	if !ok || !se.Warning {
		t.Fatalf("expected warning ServerError, got %v", err)
	}
	if se.Message != "Image does not look like cattle." {
		t.Fatalf("unexpected message %q", se.Message)
	}
}

func TestUpdateProfileUsesPUT(t *testing.T) {
	h, _ := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/update_profile" {
			t.Errorf("wrong path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "Server Name"})
	}))

	updated, err := h.UpdateProfile(context.Background(), ProfileUpdate{Name: "Client Name", Village: "V"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Server Name" {
		t.Errorf("server-echoed name should win, got %q", updated.Name)
	}
	if updated.Village != "V" {
		t.Errorf("omitted fields should keep submitted values, got %q", updated.Village)
	}
}

func TestTransportFailureWrapped(t *testing.T) {
	h, srv := newTestHTTP(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	_, err := h.VerifyOTP(context.Background(), "123456")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if _, isServer := AsServerError(err); isServer {
		t.Fatal("transport failures must not be ServerErrors")
	}
	var ufe apperrors.UserFriendlyError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UserFriendlyError, got %T", err)
	}
}
