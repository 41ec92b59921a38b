package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"kvd/internal/pipeline"
)

func TestApplyEventTracksStatus(t *testing.T) {
	m := NewProgressModel("parse", []string{"a.kvd", "b.kvd"}, nil)

	m.Update(eventMsg{File: "a.kvd", Stage: pipeline.StageLex, Status: pipeline.StatusWorking})
	if got := m.items[0].status; got != "lexing" {
		t.Fatalf("a.kvd status = %q, want lexing", got)
	}
	if p := m.Percent(); p != 0.15 {
		t.Errorf("percent = %v, want 0.15", p)
	}

	m.applyEvent(pipeline.Event{File: "a.kvd", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.kvd", Stage: pipeline.StageParse, Status: pipeline.StatusError})
	m.applyEvent(pipeline.Event{File: "unknown.kvd", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	if p := m.Percent(); p != 1 {
		t.Errorf("percent = %v, want 1", p)
	}

	view := m.View()
	if !strings.Contains(view, "parse 2/2") || !strings.Contains(view, "error b.kvd") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestQuitOnClosedChannelAndKeys(t *testing.T) {
	ch := make(chan pipeline.Event)
	close(ch)
	m := NewProgressModel("parse", []string{"a.kvd"}, ch)
	if msg := m.listenForEvent()(); msg != (doneMsg{}) {
		t.Fatalf("closed channel produced %#v", msg)
	}
	m.Update(doneMsg{})
	if !m.done || m.Interrupted() {
		t.Error("done message must finish without interruption")
	}

	m = NewProgressModel("parse", []string{"a.kvd"}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Interrupted() {
		t.Error("ctrl+c must mark the model interrupted")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("conf/very/long/path.kvd", 10); got != "conf/ve..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short.kvd", 20); got != "short.kvd" {
		t.Errorf("truncate = %q", got)
	}
}
