package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubSender struct {
	err     error
	calls   int
	to      string
	subject string
	body    string
}

func (s *stubSender) Send(ctx context.Context, to, subject, body string) error {
	s.calls++
	s.to, s.subject, s.body = to, subject, body
	return s.err
}

func newTestRouter(sender Sender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(sender).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func postEmail(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSendEmailSuccess(t *testing.T) {
	sender := &stubSender{}
	router := newTestRouter(sender)

	resp := postEmail(t, router, `{"to":"user@example.com","subject":"Roadmap","content":"1. Learn Go"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success true")
	}
	if sender.to != "user@example.com" || sender.subject != "Roadmap" {
		t.Fatalf("sender got %q/%q", sender.to, sender.subject)
	}
}

func TestSendEmailDefaultsSubject(t *testing.T) {
	sender := &stubSender{}
	router := newTestRouter(sender)

	resp := postEmail(t, router, `{"to":"user@example.com","content":"steps"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if sender.subject != defaultSubject {
		t.Fatalf("subject = %q, want default", sender.subject)
	}
}

func TestSendEmailInvalidRecipientRejectedBeforeSend(t *testing.T) {
	sender := &stubSender{}
	router := newTestRouter(sender)

	for _, to := range []string{"", "not-an-address", "a@b@c"} {
		payload, _ := json.Marshal(map[string]string{"to": to, "content": "x"})
		resp := postEmail(t, router, string(payload))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("to=%q: status = %d, want 400", to, resp.Code)
		}
	}
	if sender.calls != 0 {
		t.Fatalf("sender must not be called for invalid recipients")
	}
}

func TestSendEmailEmptyContentRejected(t *testing.T) {
	sender := &stubSender{}
	router := newTestRouter(sender)

	resp := postEmail(t, router, `{"to":"user@example.com","content":"  "}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestSendEmailDeliveryFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp: 535 authentication failed")}
	router := newTestRouter(sender)

	resp := postEmail(t, router, `{"to":"user@example.com","content":"x"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "failed to send email" {
		t.Fatalf("error = %q", body.Error)
	}
	if sender.calls != 1 {
		t.Fatalf("expected exactly one send attempt, got %d", sender.calls)
	}
}
