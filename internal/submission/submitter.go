// Package submission turns a prediction form into one POST /api/predict
// call and renders the outcome into a View.
//
// A Submitter keeps a single current request. Submitting again cancels
// the pending request and its outcome is never rendered.
package submission

import (
	"context"
	"errors"
	"strings"
	"sync"

	"algooee/internal/dto"
	"algooee/pkg/httpclient"
	"algooee/pkg/logger"
	"algooee/pkg/utils"
)

const PredictPath = "/api/predict"

// Form holds the raw field values. Empty dates take their defaults.
type Form struct {
	ISIN      string
	StartDate string
	EndDate   string
}

// Result describes how a submission settled.
type Result struct {
	State    State
	Text     string
	Response *dto.PredictionResponse
	Err      error
	// Superseded is set when a newer submission, Unregister or a
	// cancelled ctx ended this one before it settled. Nothing was
	// rendered for it.
	Superseded bool
}

type Submitter struct {
	client       httpclient.HTTPClient
	view         View
	dates        utils.DateProvider
	log          *logger.Logger
	defaultStart string

	mu     sync.Mutex
	state  State
	token  uint64
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Submitter)

// WithDefaultStartDate overrides the start date used when the form has none.
func WithDefaultStartDate(date string) Option {
	return func(s *Submitter) {
		s.defaultStart = date
	}
}

func NewSubmitter(client httpclient.HTTPClient, view View, dates utils.DateProvider, log *logger.Logger, opts ...Option) *Submitter {
	s := &Submitter{
		client:       client,
		view:         view,
		dates:        dates,
		log:          log,
		defaultStart: dto.DefaultStartDate,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BuildRequest applies the date defaults to form.
func (s *Submitter) BuildRequest(form Form) dto.PredictionRequest {
	req := dto.PredictionRequest{
		ISIN:      strings.TrimSpace(form.ISIN),
		StartDate: strings.TrimSpace(form.StartDate),
		EndDate:   strings.TrimSpace(form.EndDate),
	}
	if req.StartDate == "" {
		req.StartDate = s.defaultStart
	}
	if req.EndDate == "" {
		req.EndDate = utils.FormatISODate(s.dates.Today())
	}
	return req
}

// Submit sends form and renders the outcome. The view shows "Loading..."
// before any network I/O starts.
func (s *Submitter) Submit(ctx context.Context, form Form) Result {
	req := s.BuildRequest(form)
	token, reqCtx := s.begin(ctx)
	return s.send(ctx, reqCtx, token, req)
}

func (s *Submitter) send(ctx, reqCtx context.Context, token uint64, req dto.PredictionRequest) Result {
	s.log.DebugContext(ctx, "Submitting prediction request",
		logger.StringField("isin", req.ISIN),
		logger.StringField("start_date", req.StartDate),
		logger.StringField("end_date", req.EndDate),
	)

	resp, err := s.client.Post(reqCtx, PredictPath, req, nil, nil)
	result := outcome(resp, err)
	aborted := err != nil && errors.Is(reqCtx.Err(), context.Canceled)

	if !s.finish(token, result, aborted) {
		s.log.DebugContext(ctx, "Discarding superseded prediction response", logger.StringField("isin", req.ISIN))
		return Result{State: result.State, Err: result.Err, Superseded: true}
	}
	return result
}

// Wait blocks until no request is pending or ctx is done.
func (s *Submitter) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()
		if done == nil {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Abort cancels the pending request, if any, without rendering it.
func (s *Submitter) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.token++
	s.cancel()
	s.cancel = nil
	s.settle()
	s.state = StateIdle
}

// Register submits every form received on forms, in order, until the
// channel closes or the returned unregister func is called. Unregister
// cancels the pending request and waits for the listener to exit.
func (s *Submitter) Register(forms <-chan Form) (unregister func()) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case form, ok := <-forms:
				if !ok {
					return
				}
				req := s.BuildRequest(form)
				token, reqCtx := s.begin(ctx)
				wg.Add(1)
				go func() {
					defer wg.Done()
					s.send(ctx, reqCtx, token, req)
				}()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			// Abort first so the cancelled request is no longer current
			// when its Post returns.
			s.Abort()
			cancel()
			wg.Wait()
		})
	}
}

// begin makes a new request current, cancelling the previous one.
func (s *Submitter) begin(ctx context.Context) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.settle()
	reqCtx, cancel := context.WithCancel(ctx)
	s.token++
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = StateLoading

	s.view.Show()
	s.view.SetText(loadingText)
	return s.token, reqCtx
}

// finish renders result if token is still current. An aborted request
// settles back to Idle without rendering.
func (s *Submitter) finish(token uint64, result Result, aborted bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	s.cancel()
	s.cancel = nil
	s.settle()
	if aborted {
		s.state = StateIdle
		return false
	}
	s.state = result.State
	s.view.SetText(result.Text)
	return true
}

// settle releases Wait callers of the current request. Callers hold mu.
func (s *Submitter) settle() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func outcome(resp *httpclient.BaseResponse, err error) Result {
	if err != nil {
		return Result{State: StateTransportError, Text: transportErrorText(err), Err: err}
	}

	if resp.IsSuccess() {
		prediction, err := decodePrediction(resp.Body)
		if err != nil {
			return Result{State: StateTransportError, Text: transportErrorText(err), Err: err}
		}
		return Result{State: StateSuccess, Text: successText(prediction), Response: &prediction}
	}

	detail := errorDetail(resp.Body)
	if detail == "" {
		detail = resp.StatusText()
	}
	return Result{State: StateFailure, Text: failureText(detail)}
}
