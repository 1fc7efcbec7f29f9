package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testNotifier(serverURL string) *TelegramNotifier {
	t := NewTelegramNotifier("TOKEN", "42", "")
	t.APIBase = serverURL
	return t
}

func TestSend_PostsToConfiguredChat(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	tn := testNotifier(srv.URL)
	if err := tn.Send(context.Background(), "<b>AAPL alert</b>"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotPayload["chat_id"] != "42" {
		t.Errorf("expected chat_id 42, got %q", gotPayload["chat_id"])
	}
	if gotPayload["text"] != "<b>AAPL alert</b>" {
		t.Errorf("unexpected text: %q", gotPayload["text"])
	}
	if gotPayload["parse_mode"] != "HTML" {
		t.Errorf("expected HTML parse mode, got %q", gotPayload["parse_mode"])
	}
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"ok":false,"description":"Bad Request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := testNotifier(srv.URL)
	err := tn.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestSendWithRetry_StopsOnCancelledContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tn := testNotifier(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tn.SendWithRetry(ctx, "hello", 3); err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if got := calls.Load(); got > 1 {
		t.Errorf("expected no retries after cancellation, got %d calls", got)
	}
}

func TestStartPolling_RoutesConfiguredChatOnly(t *testing.T) {
	commands := make(chan string, 2)
	replies := make(chan string, 2)
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if polls.Add(1) == 1 {
				// One command from the configured chat, one from a stranger.
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/list","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/list","chat":{"id":99}}}]}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var payload map[string]string
			_ = json.NewDecoder(r.Body).Decode(&payload)
			replies <- payload["text"]
			fmt.Fprint(w, `{"ok":true}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tn := testNotifier(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(command string) string {
			commands <- command
			return "watchlist reply"
		})
		close(done)
	}()

	select {
	case got := <-commands:
		if got != "/list" {
			t.Errorf("expected /list, got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was never invoked")
	}
	select {
	case got := <-replies:
		if got != "watchlist reply" {
			t.Errorf("unexpected reply: %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reply was never sent")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancellation")
	}

	// The stranger's command must not reach the handler.
	select {
	case got := <-commands:
		t.Errorf("unexpected second command dispatch: %q", got)
	default:
	}
}
