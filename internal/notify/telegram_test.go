package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/amstore/amstore-system/internal/model"
)

func testDispatcher(t *testing.T, apiURL string, chatIDs []string) *TelegramDispatcher {
	t.Helper()

	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = 2 * time.Second
	client.Logger = nil

	return &TelegramDispatcher{
		apiURL:     apiURL,
		chatIDs:    chatIDs,
		httpClient: client,
		logger:     zap.NewNop(),
	}
}

func sampleOrder() model.Order {
	return model.Order{
		ID:           "1756600000000",
		CustomerName: "أحمد",
		Phone:        "0551234567",
		Wilaya:       "16 - الجزائر",
		Baladiya:     "باب الوادي",
		ProductName:  "ساعة رولكس صبمارينر",
		TotalPrice:   45450,
		Date:         "31/08/2026",
		Status:       model.OrderStatusPending,
	}
}

func TestDispatch_AllRecipientsOK(t *testing.T) {
	var mu sync.Mutex
	var gotChats []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		mu.Lock()
		gotChats = append(gotChats, req.ChatID)
		mu.Unlock()

		if req.ParseMode != "Markdown" {
			t.Errorf("parse_mode = %q, want Markdown", req.ParseMode)
		}
		if !strings.Contains(req.Text, "أحمد") || !strings.Contains(req.Text, "45450") {
			t.Errorf("message text missing order fields: %q", req.Text)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	d := testDispatcher(t, ts.URL, []string{"111", "222"})

	if !d.Dispatch(context.Background(), sampleOrder()) {
		t.Fatalf("Dispatch = false, want true")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(gotChats) != 2 {
		t.Fatalf("recipients called = %v, want both", gotChats)
	}
}

func TestDispatch_OneRecipientEnough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.ChatID == "bad" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	d := testDispatcher(t, ts.URL, []string{"bad", "good"})

	if !d.Dispatch(context.Background(), sampleOrder()) {
		t.Fatalf("Dispatch = false, want true when one recipient acknowledges")
	}
}

func TestDispatch_AllRecipientsFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	d := testDispatcher(t, ts.URL, []string{"111", "222"})

	if d.Dispatch(context.Background(), sampleOrder()) {
		t.Fatalf("Dispatch = true, want false when all recipients fail")
	}
}

func TestDispatch_TransportErrorReportedAsFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // сервер закрыт: любой вызов — сетевая ошибка

	d := testDispatcher(t, ts.URL, []string{"111"})

	if d.Dispatch(context.Background(), sampleOrder()) {
		t.Fatalf("Dispatch = true, want false on transport error")
	}
}

func TestDispatch_NoRecipients(t *testing.T) {
	d := testDispatcher(t, "http://localhost:0", nil)

	if d.Dispatch(context.Background(), sampleOrder()) {
		t.Fatalf("Dispatch = true, want false with no recipients")
	}
}

func TestFormatOrderMessage(t *testing.T) {
	text := FormatOrderMessage(sampleOrder())

	for _, want := range []string{
		"أحمد",
		"0551234567",
		"16 - الجزائر",
		"باب الوادي",
		"ساعة رولكس صبمارينر",
		"45450",
		"31/08/2026",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}
}
