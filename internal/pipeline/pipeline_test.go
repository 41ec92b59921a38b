package pipeline_test

import (
	"sync"
	"testing"

	"kvd/internal/pipeline"
)

func TestChannelSinkAndEmit(t *testing.T) {
	ch := make(chan pipeline.Event, 1)
	pipeline.Emit(pipeline.ChannelSink{Ch: ch}, pipeline.Event{File: "a.kvd", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	evt := <-ch
	if evt.File != "a.kvd" || evt.Status != pipeline.StatusDone {
		t.Errorf("unexpected event %+v", evt)
	}
	pipeline.Emit(nil, evt) // nil sink is ignored
	pipeline.ChannelSink{}.OnEvent(evt)
}

func TestRecorderCollectsConcurrentEvents(t *testing.T) {
	rec := &pipeline.Recorder{}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pipeline.Emit(rec, pipeline.Event{File: "a.kvd", Stage: pipeline.StageLex, Status: pipeline.StatusWorking})
		}()
	}
	wg.Wait()
	events := rec.Events()
	if len(events) != 8 {
		t.Fatalf("recorded %d events, want 8", len(events))
	}
	events[0].File = "changed"
	if rec.Events()[0].File != "a.kvd" {
		t.Error("Events must return a copy")
	}
}
