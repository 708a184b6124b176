package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"locstamp/pkg/output"
	"locstamp/pkg/rewriter"
)

func testReport() *output.Report {
	return output.NewReport(&rewriter.Stats{
		LinesProcessed: 5,
		LinesMatched:   2,
		Counted:        2,
	}, output.Metadata{
		InputFile:  "template.txt",
		OutputFile: "out.txt",
		CSVFile:    "counts.csv",
	}, 3)
}

func TestSend_Success(t *testing.T) {
	var gotContentType, gotAuth string
	var gotBody output.Report

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), testReport(), SendOptions{
		URL:   server.URL,
		Token: "secret",
	})

	if !resp.Success() {
		t.Fatalf("Send() failed: %v", resp.Error)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer token", gotAuth)
	}
	if gotBody.Summary.LinesProcessed != 5 {
		t.Errorf("Payload LinesProcessed = %d, want 5", gotBody.Summary.LinesProcessed)
	}
}

func TestSend_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), testReport(), SendOptions{URL: server.URL})

	if resp.Success() {
		t.Error("Send() reported success for 500 response")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
	}
	if resp.Error == nil {
		t.Error("Error is nil for 500 response")
	}
}

func TestSend_Unreachable(t *testing.T) {
	client := NewClient()
	resp := client.Send(context.Background(), testReport(), SendOptions{
		URL: "http://127.0.0.1:1/webhook",
	})

	if resp.Success() {
		t.Error("Send() reported success for unreachable endpoint")
	}
	if resp.Error == nil {
		t.Error("Error is nil for unreachable endpoint")
	}
}
