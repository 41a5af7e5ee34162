// README: Image job orchestrator tests against a scripted provider.
package imagejob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderlust/internal/config"
	"wanderlust/internal/imagegen"
)

type checkStep struct {
	st  imagegen.CheckStatus
	err error
}

type resultStep struct {
	url string
	err error
}

// scriptedProvider replays its steps in order and repeats the last one.
type scriptedProvider struct {
	mu        sync.Mutex
	submitErr error
	checks    []checkStep
	results   []resultStep
	prompts   []string
	nCheck    int
	nResult   int
}

func (p *scriptedProvider) Submit(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if p.submitErr != nil {
		return "", p.submitErr
	}
	return "job-1", nil
}

func (p *scriptedProvider) Check(_ context.Context, _ string) (imagegen.CheckStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	step := p.checks[min(p.nCheck, len(p.checks)-1)]
	p.nCheck++
	return step.st, step.err
}

func (p *scriptedProvider) Result(_ context.Context, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	step := p.results[min(p.nResult, len(p.results)-1)]
	p.nResult++
	return step.url, step.err
}

func (p *scriptedProvider) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nCheck, p.nResult
}

type recordingAttacher struct {
	mu    sync.Mutex
	calls []string
}

func (a *recordingAttacher) AttachImage(_ context.Context, tripID, url string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, tripID+"="+url)
}

func testImageConfig() config.ImageConfig {
	return config.ImageConfig{
		StatusInterval:    time.Millisecond,
		ResultInterval:    time.Millisecond,
		MaxResultAttempts: 10,
		JobTimeout:        5 * time.Second,
	}
}

func collect(seq iter.Seq[ProgressEvent]) []ProgressEvent {
	var out []ProgressEvent
	for ev := range seq {
		out = append(out, ev)
	}
	return out
}

func TestRunWaitingThenDone(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 1, WaitTime: 5}}, {st: imagegen.CheckStatus{Done: true, Finished: 1}}},
		results: []resultStep{{url: ""}, {url: "https://cdn.example/peru.webp"}},
	}
	trips := &recordingAttacher{}
	o := NewOrchestrator(p, trips, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Peru", "trip-1"))
	want := []ProgressEvent{Waiting(5), Done("https://cdn.example/peru.webp")}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(p.prompts) != 1 || p.prompts[0] != "A realistic image representing Peru" {
		t.Fatalf("unexpected prompts %v", p.prompts)
	}
	if len(trips.calls) != 1 || trips.calls[0] != "trip-1=https://cdn.example/peru.webp" {
		t.Fatalf("expected image attached once, got %v", trips.calls)
	}
}

func TestRunWithoutTripDoesNotAttach(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{url: "https://cdn.example/x.webp"}},
	}
	trips := &recordingAttacher{}
	o := NewOrchestrator(p, trips, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Chile", ""))
	if len(got) != 1 || got[0].Kind != KindDone {
		t.Fatalf("expected single done event, got %v", got)
	}
	if len(trips.calls) != 0 {
		t.Fatalf("expected no attach without trip id, got %v", trips.calls)
	}
}

func TestAmbiguousZeroWaitReportsOne(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 1, WaitTime: 0}}, {st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{url: "u"}},
	}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Chile", ""))
	if len(got) != 2 || got[0] != Waiting(1) {
		t.Fatalf("expected waiting:1 first, got %v", got)
	}
}

func TestStartFailure(t *testing.T) {
	p := &scriptedProvider{submitErr: errors.New("horde down")}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	if _, err := o.Start(context.Background(), "Peru", ""); !errors.Is(err, ErrJobStart) {
		t.Fatalf("expected ErrJobStart, got %v", err)
	}
	got := collect(o.Run(context.Background(), "Peru", ""))
	if len(got) != 1 || got[0] != Failed(ErrJobStart.Error()) {
		t.Fatalf("expected a single failed event, got %v", got)
	}
}

func TestStatusErrorIsTerminal(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 2, WaitTime: 7}}, {err: errors.New("502")}},
		results: []resultStep{{url: "never"}},
	}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Peru", ""))
	want := []ProgressEvent{Waiting(7), Failed(ErrStatusCheck.Error())}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, nResult := p.counts(); nResult != 0 {
		t.Fatalf("result endpoint should not be polled after a status failure")
	}
}

func TestFaultedJobFails(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Faulted: true}}},
		results: []resultStep{{url: "never"}},
	}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Peru", ""))
	if len(got) != 1 || got[0] != Failed(ErrJobFaulted.Error()) {
		t.Fatalf("expected faulted failure, got %v", got)
	}
}

func TestResultErrorsAreRetried(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{err: errors.New("timeout")}, {err: errors.New("503")}, {url: ""}, {url: "https://cdn.example/ok.webp"}},
	}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	got := collect(o.Run(context.Background(), "Peru", ""))
	if len(got) != 1 || got[0] != Done("https://cdn.example/ok.webp") {
		t.Fatalf("expected done after retries, got %v", got)
	}
	if _, nResult := p.counts(); nResult != 4 {
		t.Fatalf("expected 4 result polls, got %d", nResult)
	}
}

func TestResultAttemptsExhausted(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{url: ""}},
	}
	cfg := testImageConfig()
	cfg.MaxResultAttempts = 3
	o := NewOrchestrator(p, nil, nil, cfg, nil)

	got := collect(o.Run(context.Background(), "Peru", ""))
	if len(got) != 1 || got[0] != Failed(ErrResultTimeout.Error()) {
		t.Fatalf("expected timeout failure, got %v", got)
	}
	if _, nResult := p.counts(); nResult != 3 {
		t.Fatalf("expected 3 result polls, got %d", nResult)
	}
}

func TestJobTimeout(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{url: ""}},
	}
	cfg := testImageConfig()
	cfg.MaxResultAttempts = 1 << 20
	cfg.ResultInterval = 5 * time.Millisecond
	cfg.JobTimeout = 30 * time.Millisecond
	o := NewOrchestrator(p, nil, nil, cfg, nil)

	got := collect(o.Run(context.Background(), "Peru", ""))
	if len(got) != 1 || got[0] != Failed(ErrResultTimeout.Error()) {
		t.Fatalf("expected timeout failure, got %v", got)
	}
}

func TestConsumerStopEndsPolling(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 3, WaitTime: 30}}},
		results: []resultStep{{url: "never"}},
	}
	o := NewOrchestrator(p, nil, nil, testImageConfig(), nil)

	for ev := range o.Run(context.Background(), "Peru", "") {
		if ev != Waiting(30) {
			t.Fatalf("unexpected event %v", ev)
		}
		break
	}
	if nCheck, _ := p.counts(); nCheck != 1 {
		t.Fatalf("expected polling to stop after consumer break, got %d checks", nCheck)
	}
}

func TestContextCancelStopsSilently(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 3, WaitTime: 30}}},
		results: []resultStep{{url: "never"}},
	}
	cfg := testImageConfig()
	cfg.StatusInterval = time.Second
	o := NewOrchestrator(p, nil, nil, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var got []ProgressEvent
	for ev := range o.Run(ctx, "Peru", "") {
		got = append(got, ev)
		cancel()
	}
	if len(got) != 1 || got[0] != Waiting(30) {
		t.Fatalf("expected only the first waiting event, got %v", got)
	}
}

func TestLedgerTracksProgress(t *testing.T) {
	p := &scriptedProvider{
		checks:  []checkStep{{st: imagegen.CheckStatus{Waiting: 1, WaitTime: 4}}, {st: imagegen.CheckStatus{Done: true}}},
		results: []resultStep{{url: "https://cdn.example/l.webp"}},
	}
	ledger := NewMemoryLedger()
	o := NewOrchestrator(p, nil, ledger, testImageConfig(), nil)
	ctx := context.Background()

	job, err := o.Start(ctx, "Peru", "trip-9")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	snap, err := ledger.Get(ctx, "trip-9")
	if err != nil || snap.State != KindWaiting || snap.JobID != "job-1" {
		t.Fatalf("expected queued snapshot, got %+v %v", snap, err)
	}

	for ev := range o.Poll(ctx, job) {
		snap, _ := ledger.Get(ctx, "trip-9")
		if snap.State != ev.Kind {
			t.Fatalf("ledger lags event: %v vs %v", snap.State, ev.Kind)
		}
	}
	snap, _ = ledger.Get(ctx, "trip-9")
	if snap.State != KindDone || snap.ImageURL != "https://cdn.example/l.webp" {
		t.Fatalf("unexpected final snapshot %+v", snap)
	}
}

func TestEffectiveWait(t *testing.T) {
	cases := []struct {
		st   imagegen.CheckStatus
		want int
	}{
		{imagegen.CheckStatus{Done: true, WaitTime: 12}, 0},
		{imagegen.CheckStatus{Waiting: 1, WaitTime: 0}, 1},
		{imagegen.CheckStatus{Waiting: 1, WaitTime: 9}, 9},
		{imagegen.CheckStatus{Processing: 1, WaitTime: 0}, 0},
		{imagegen.CheckStatus{WaitTime: -3}, 0},
	}
	for _, tc := range cases {
		if got := EffectiveWait(tc.st); got != tc.want {
			t.Errorf("EffectiveWait(%+v) = %d, want %d", tc.st, got, tc.want)
		}
	}
}

func TestProgressEventJSON(t *testing.T) {
	cases := []struct {
		ev   ProgressEvent
		want string
	}{
		{Waiting(5), `{"waitTime":5}`},
		{Done("https://cdn.example/a.webp"), `{"imageUrl":"https://cdn.example/a.webp"}`},
		{Failed("boom"), `{"error":"boom"}`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.ev)
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.ev, err)
		}
		if string(b) != tc.want {
			t.Errorf("got %s, want %s", b, tc.want)
		}
	}
	if Waiting(1).Terminal() || !Done("u").Terminal() || !Failed("r").Terminal() {
		t.Error("unexpected Terminal() result")
	}
}

func TestRedisLedger(t *testing.T) {
	addr := os.Getenv("WANDER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WANDER_TEST_REDIS_ADDR not set; skipping Redis ledger test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	ledger := NewRedisLedger(rdb)
	tripID := fmt.Sprintf("trip_test_%d", time.Now().UnixNano())
	t.Cleanup(func() { rdb.Del(ctx, ledgerKey(tripID)) })

	if _, err := ledger.Get(ctx, tripID); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	in := Snapshot{TripID: tripID, JobID: "job-r", Country: "Peru", State: KindWaiting, WaitSeconds: 6, UpdatedAt: now}
	if err := ledger.Record(ctx, in); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := ledger.Get(ctx, tripID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.JobID != "job-r" || got.WaitSeconds != 6 || got.State != KindWaiting || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	ttl, err := rdb.TTL(ctx, ledgerKey(tripID)).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > ledgerTTL {
		t.Fatalf("expected ttl within (0, %v], got %v", ledgerTTL, ttl)
	}
}
