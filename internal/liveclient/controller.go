// Package liveclient turns form edits into HTTP calls against a fixed
// route prefix and puts the formatted reply in the form's output.
//
// A Controller is not safe for concurrent use. Front ends mutate it from a
// single event loop; only Perform is meant to run elsewhere.
package liveclient

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/format"
	"github.com/unkn0wn-root/livereq/internal/httpclient"
)

// Doer performs one round trip.
type Doer interface {
	Execute(ctx context.Context, req httpclient.Request, opts httpclient.Options) (*httpclient.Response, error)
}

// Controller owns the form state and the sequence of issued submissions.
type Controller struct {
	state  form.State
	prefix string
	seq    uint64
}

// Submission is a snapshot of the form taken at submit time.
type Submission struct {
	Seq     uint64
	Request httpclient.Request
}

// Result is the outcome of one submission, ready for Resolve.
type Result struct {
	Seq      uint64
	Output   string
	Response *httpclient.Response
	Err      error
}

// New returns a controller whose requests go to prefix + endpoint.
func New(prefix string) *Controller {
	return &Controller{state: form.NewState(), prefix: prefix}
}

func (c *Controller) State() form.State {
	return c.state.Clone()
}

func (c *Controller) Prefix() string {
	return c.prefix
}

func (c *Controller) UpdateField(field form.Field, value string) bool {
	return c.state.UpdateField(field, value)
}

func (c *Controller) AddHeader() {
	c.state.AddHeader()
}

func (c *Controller) RemoveHeader(index int) bool {
	return c.state.RemoveHeader(index)
}

func (c *Controller) UpdateHeader(index int, field form.HeaderField, value string) bool {
	return c.state.UpdateHeader(index, field, value)
}

func (c *Controller) SetCall(call form.Call) {
	c.state.SetCall(call)
}

// FormatOutput stores raw in the output panel, pretty-printed when it
// parses as JSON or XML.
func (c *Controller) FormatOutput(raw string) {
	c.state.Output = format.Output(raw)
}

// Submit snapshots the form into a request. GET requests never carry a
// body; every other verb sends the body text as typed.
func (c *Controller) Submit() Submission {
	c.seq++
	req := httpclient.Request{
		ID:      uuid.NewString(),
		Seq:     c.seq,
		Method:  string(c.state.Method),
		URL:     c.prefix + c.state.Endpoint,
		Headers: c.state.HeaderMap(),
	}
	if c.state.Method != form.MethodGet {
		body := c.state.Body
		req.Body = &body
	}
	return Submission{Seq: c.seq, Request: req}
}

// Resolve applies a result unless a newer submission has been issued
// since, in which case the result is stale and dropped.
func (c *Controller) Resolve(res Result) bool {
	if res.Seq != c.seq {
		log.Printf("liveclient: dropping stale result seq=%d latest=%d", res.Seq, c.seq)
		return false
	}
	c.state.Output = res.Output
	return true
}

// Send runs a submission to completion on the calling goroutine.
func (c *Controller) Send(ctx context.Context, doer Doer, opts httpclient.Options) Result {
	res := Perform(ctx, doer, c.Submit(), opts)
	c.Resolve(res)
	return res
}

// Perform executes sub and formats the reply. It touches no controller
// state, so it can run on any goroutine.
func Perform(ctx context.Context, doer Doer, sub Submission, opts httpclient.Options) Result {
	res := Result{Seq: sub.Seq}
	req := sub.Request
	log.Printf("liveclient: %s %s id=%s seq=%d", req.Method, req.URL, req.ID, req.Seq)

	resp, err := doer.Execute(ctx, req, opts)
	if err != nil {
		log.Printf("liveclient: request %s failed: %v", req.ID, err)
		res.Err = err
		res.Output = errdef.Message(err)
		return res
	}
	res.Response = resp
	res.Output = format.Output(string(resp.Body))
	return res
}
