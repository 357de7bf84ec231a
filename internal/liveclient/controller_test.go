package liveclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/httpclient"
)

type stubDoer struct {
	got  httpclient.Request
	resp *httpclient.Response
	err  error
}

func (s *stubDoer) Execute(
	_ context.Context,
	req httpclient.Request,
	_ httpclient.Options,
) (*httpclient.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestSubmitDefaultGET(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAccept string
		gotCT     string
		gotLen    int64
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotCT = r.Header.Get("Content-Type")
		gotLen = r.ContentLength
		_, _ = io.WriteString(w, `{"resourceType":"Observation","id":"123"}`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/r4/")
	c.UpdateField(form.FieldEndpoint, "Observation/123")
	c.UpdateField(form.FieldBody, "ignored for GET")

	res := c.Send(context.Background(), httpclient.NewClient(), httpclient.Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if gotMethod != http.MethodGet || gotPath != "/r4/Observation/123" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotAccept != "application/json" || gotCT != "application/json" {
		t.Fatalf("unexpected headers accept=%q content-type=%q", gotAccept, gotCT)
	}
	if gotLen != 0 {
		t.Fatalf("GET must not send a body, content length %d", gotLen)
	}
	want := "{\n  \"resourceType\": \"Observation\",\n  \"id\": \"123\"\n}"
	if got := c.State().Output; got != want {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSubmitBuildsRequestFromState(t *testing.T) {
	c := New("/r4/")
	c.UpdateField(form.FieldMethod, "PUT")
	c.UpdateField(form.FieldEndpoint, "Patient/7")
	c.UpdateField(form.FieldBody, "")
	c.AddHeader()
	c.UpdateHeader(2, form.HeaderKey, "Accept")
	c.UpdateHeader(2, form.HeaderValue, "application/xml")

	sub := c.Submit()
	req := sub.Request
	if req.URL != "/r4/Patient/7" || req.Method != "PUT" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Body == nil || *req.Body != "" {
		t.Fatalf("expected empty but present body for PUT, got %v", req.Body)
	}
	if req.Headers["Accept"] != "application/xml" {
		t.Fatalf("expected last Accept entry to win, got %q", req.Headers["Accept"])
	}
	if req.ID == "" || sub.Seq != 1 || req.Seq != 1 {
		t.Fatalf("expected id and first sequence, got id=%q seq=%d", req.ID, sub.Seq)
	}
	if next := c.Submit(); next.Seq != 2 || next.Request.ID == req.ID {
		t.Fatalf("expected fresh id and seq, got %+v", next)
	}
}

func TestPerformNetworkFailureSetsMessage(t *testing.T) {
	c := New("http://localhost/r4/")
	doer := &stubDoer{err: errdef.Wrap(errdef.CodeHTTP, errors.New("connection refused"), "perform request")}

	res := c.Send(context.Background(), doer, httpclient.Options{})
	if res.Err == nil {
		t.Fatalf("expected error to be reported")
	}
	if got := c.State().Output; got != "connection refused" {
		t.Fatalf("expected failure message in output, got %q", got)
	}
}

func TestPerformFormatsNonSuccessStatus(t *testing.T) {
	doer := &stubDoer{resp: &httpclient.Response{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`<OperationOutcome><issue/></OperationOutcome>`),
	}}
	c := New("/r4/")
	c.Send(context.Background(), doer, httpclient.Options{})
	want := "<OperationOutcome>\n  <issue/>\n</OperationOutcome>"
	if got := c.State().Output; got != want {
		t.Fatalf("expected formatted error body, got %q", got)
	}
}

func TestResolveDropsStaleResults(t *testing.T) {
	c := New("/r4/")
	first := c.Submit()
	second := c.Submit()

	if !c.Resolve(Result{Seq: second.Seq, Output: "second"}) {
		t.Fatalf("expected latest result to apply")
	}
	if c.Resolve(Result{Seq: first.Seq, Output: "first"}) {
		t.Fatalf("expected stale result to be dropped")
	}
	if got := c.State().Output; got != "second" {
		t.Fatalf("expected output from latest submission, got %q", got)
	}
}

func TestFormatOutputFallsBackToRaw(t *testing.T) {
	c := New("/r4/")
	c.FormatOutput("plain text reply")
	if got := c.State().Output; got != "plain text reply" {
		t.Fatalf("expected raw text, got %q", got)
	}
	c.FormatOutput(`{"a":1}`)
	if got := c.State().Output; got != "{\n  \"a\": 1\n}" {
		t.Fatalf("expected indented JSON, got %q", got)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	c := New("/r4/")
	s := c.State()
	s.Headers[0].Key = "mutated"
	if c.State().Headers[0].Key != "Accept" {
		t.Fatalf("State must return a copy")
	}
}

func TestSetCallThenSubmit(t *testing.T) {
	c := New("/r4/")
	c.SetCall(form.Call{Method: "POST", Endpoint: "Patient", Body: `{"a":1}`})
	req := c.Submit().Request
	if req.Method != "POST" || req.URL != "/r4/Patient" || req.Body == nil || *req.Body != `{"a":1}` {
		t.Fatalf("unexpected request after SetCall %+v", req)
	}
	if len(req.Headers) != 0 {
		t.Fatalf("expected no headers after SetCall without headers, got %#v", req.Headers)
	}
	if c.RemoveHeader(0) {
		t.Fatalf("expected removal on empty header list to be ignored")
	}
}
