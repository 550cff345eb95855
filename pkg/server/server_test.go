package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/Tani1964/compiler-api/pkg/compiler"
	"github.com/Tani1964/compiler-api/pkg/server"
)

type compileResponse struct {
	Tokens           [][2]string     `json:"tokens"`
	AST              json.RawMessage `json:"ast"`
	IntermediateCode []string        `json:"intermediate_code"`
	MachineCode      string          `json:"machine_code"`
	Rule             string          `json:"rule"`
	Error            string          `json:"error"`
}

func newTestServer(t *testing.T, logs io.Writer) *httptest.Server {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.Logger = log.New(logs, "", 0)
	ts := httptest.NewServer(server.New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/compiler", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCompileEndpoint(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	resp := postJSON(t, ts, `{"text":"a=b+c"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got compileResponse
	decode(t, resp, &got)

	wantCode := []string{"MOV temp0, b", "ADD temp0, c", "MOV a, temp0"}
	if !reflect.DeepEqual(got.IntermediateCode, wantCode) {
		t.Errorf("intermediate_code = %q; want %q", got.IntermediateCode, wantCode)
	}
	if got.MachineCode != "100010 temp0, b\n000000 temp0, c\n100010 a, temp0" {
		t.Errorf("machine_code = %q", got.MachineCode)
	}
	if len(got.Tokens) != 5 || got.Tokens[0] != [2]string{"a", "identifier"} {
		t.Errorf("tokens = %v", got.Tokens)
	}
	if got.Rule != compiler.RuleAssignment || got.Error != "" {
		t.Errorf("rule=%q error=%q", got.Rule, got.Error)
	}
}

func TestCompileEndpoint_InvalidSyntax(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	resp := postJSON(t, ts, `{"text":"a+b"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got compileResponse
	decode(t, resp, &got)

	var ast string
	if err := json.Unmarshal(got.AST, &ast); err != nil || ast != compiler.InvalidSyntaxAST {
		t.Errorf("ast = %s", got.AST)
	}
	if got.IntermediateCode == nil || len(got.IntermediateCode) != 0 {
		t.Errorf("intermediate_code = %#v; want []", got.IntermediateCode)
	}
	if got.MachineCode != "" || got.Error == "" {
		t.Errorf("machine_code=%q error=%q", got.MachineCode, got.Error)
	}
}

func TestCompileEndpoint_BadRequests(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"malformed json", `{"text":`},
		{"missing text", `{}`},
		{"empty text", `{"text":""}`},
		{"blank text", `{"text":"   "}`},
		{"wrong type", `{"text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			var got map[string]string
			decode(t, resp, &got)
			if got["error"] == "" {
				t.Errorf("expected error message, got %v", got)
			}
		})
	}
}

func TestCompileEndpoint_Get(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	resp, err := http.Get(ts.URL + "/api/compiler?text=" + url.QueryEscape("x=1+2"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got compileResponse
	decode(t, resp, &got)
	if got.MachineCode != "100010 temp0, 1\n000000 temp0, 2\n100010 x, temp0" {
		t.Errorf("machine_code = %q", got.MachineCode)
	}

	resp2, err := http.Get(ts.URL + "/api/compiler")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("GET without text: expected 400, got %d", resp2.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	for _, path := range []string{"/api/compiler", "/api/message"} {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("DELETE %s: expected 405, got %d", path, resp.StatusCode)
		}
		if resp.Header.Get("Allow") == "" {
			t.Errorf("DELETE %s: missing Allow header", path)
		}
	}
}

func TestMessageEndpoint(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	resp, err := http.Get(ts.URL + "/api/message")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got map[string]string
	decode(t, resp, &got)
	if got["message"] != server.GreetingMessage {
		t.Errorf("message = %q", got["message"])
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, io.Discard)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/compiler", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("OPTIONS: expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	resp = postJSON(t, ts, `{"text":"a=b"}`)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("POST Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestLogging(t *testing.T) {
	var logs bytes.Buffer
	cfg := server.DefaultConfig()
	cfg.Logger = log.New(&logs, "", 0)
	h := server.New(cfg).Handler()

	for _, body := range []string{`{"text":"a=b"}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/compiler", strings.NewReader(body))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := logs.String()
	if !strings.Contains(out, "POST /api/compiler 200") {
		t.Errorf("missing 200 log line:\n%s", out)
	}
	if !strings.Contains(out, "POST /api/compiler 400") {
		t.Errorf("missing 400 log line:\n%s", out)
	}
}

func TestBaseOperatorConfig(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.Logger = nil
	cfg.Compiler = compiler.Config{}
	ts := httptest.NewServer(server.New(cfg).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, `{"text":"a=b**c"}`)
	var got compileResponse
	decode(t, resp, &got)
	if got.Error == "" {
		t.Errorf("base operator set compiled **: %q", got.MachineCode)
	}
}
