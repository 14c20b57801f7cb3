package collab

import (
	"context"
	"strings"
	"testing"
)

func TestPipelineChainsOutputs(t *testing.T) {
	agents := agentsFixture(3)
	mock := newMockCaller()
	mock.queue(agents[0], ok("draft one"))
	mock.queue(agents[1], ok("draft two"))
	mock.queue(agents[2], ok("draft three"))
	o := newTestOrchestrator(mock, 1)

	records, _ := o.runPipeline(context.Background(), agents, "write a summary")

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	calls := mock.allCalls()
	if calls[0].Input != "write a summary" {
		t.Errorf("step 1 should receive the raw input, got %q", calls[0].Input)
	}
	if !strings.Contains(calls[1].Input, "draft one") {
		t.Errorf("step 2 prompt should wrap step 1's full output: %q", calls[1].Input)
	}
	if !strings.Contains(calls[2].Input, "draft two") {
		t.Errorf("step 3 prompt should wrap step 2's full output: %q", calls[2].Input)
	}

	for i, r := range records {
		if r.Step != i+1 {
			t.Errorf("record %d: step = %d, want %d", i, r.Step, i+1)
		}
	}
}

func TestPipelineHaltsOnFailure(t *testing.T) {
	agents := agentsFixture(3)
	mock := newMockCaller()
	mock.queue(agents[0], ok("step one output"))
	mock.queue(agents[1], fail("provider down"))
	o := newTestOrchestrator(mock, 1)

	records, calls := o.runPipeline(context.Background(), agents, "q")

	// Failure at step k produces exactly k-1 records, never more.
	if len(records) != 1 {
		t.Fatalf("expected 1 record after failure at step 2, got %d", len(records))
	}
	if got := mock.callCount(); got != 2 {
		t.Fatalf("remaining steps must not be attempted, got %d calls", got)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 call events, got %d", len(calls))
	}
	if calls[1].Success || calls[1].Err != "provider down" {
		t.Errorf("halting failure should be retained in the call log: %+v", calls[1])
	}
}

func TestPipelineFirstStepFailure(t *testing.T) {
	agents := agentsFixture(2)
	mock := newMockCaller()
	mock.queue(agents[0], fail("no route"))
	o := newTestOrchestrator(mock, 1)

	records, _ := o.runPipeline(context.Background(), agents, "q")

	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
	if got := mock.callCount(); got != 1 {
		t.Fatalf("expected a single attempted call, got %d", got)
	}
}

func TestPipelineRecordInputIsPreview(t *testing.T) {
	agents := agentsFixture(2)
	mock := newMockCaller()
	longOutput := strings.Repeat("verbose output ", 100)
	mock.queue(agents[0], ok(longOutput))
	mock.queue(agents[1], ok("done"))
	o := newTestOrchestrator(mock, 1)

	records, _ := o.runPipeline(context.Background(), agents, "q")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(records[1].Input) >= len(longOutput) {
		t.Errorf("record input should be a truncated preview, got %d bytes", len(records[1].Input))
	}
	// The step itself still receives the full prior output.
	if !strings.Contains(mock.allCalls()[1].Input, longOutput) {
		t.Error("step prompt must carry the previous step's full output")
	}
}
