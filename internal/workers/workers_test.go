// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"
)

// mockWorker counts lifecycle calls and appends its id to a shared log.
type mockWorker struct {
	id     int
	starts int
	stops  int
	log    *[]string
}

func (m *mockWorker) Start(context.Context) {
	m.starts++
	if m.log != nil {
		*m.log = append(*m.log, "start", string(rune('0'+m.id)))
	}
}

func (m *mockWorker) Stop() {
	m.stops++
	if m.log != nil {
		*m.log = append(*m.log, "stop", string(rune('0'+m.id)))
	}
}

func TestWorkers_Start_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Start(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.starts != 1 {
			t.Errorf("worker[%d]: expected starts=1, got %d", i, w.starts)
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Start(context.Background())
	ws.Stop()
}

func TestWorkers_StopBeforeStart(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Stop()

	if w.stops != 0 {
		t.Errorf("expected no Stop before Start, got %d", w.stops)
	}
}

func TestWorkers_Order(t *testing.T) {
	var log []string
	ws := NewWorkers(&mockWorker{id: 1, log: &log}, &mockWorker{id: 2, log: &log})

	ws.Start(context.Background())
	ws.Stop()

	expected := []string{"start", "1", "start", "2", "stop", "2", "stop", "1"}
	if len(log) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, log)
	}
	for i, v := range expected {
		if log[i] != v {
			t.Errorf("expected log[%d]=%s, got %s", i, v, log[i])
		}
	}
}

func TestWorkers_StartTwice(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Start(context.Background())
	ws.Start(context.Background())

	if w.starts != 1 {
		t.Errorf("expected Start to be called exactly once, got %d", w.starts)
	}
}

func TestWorkers_Restart(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Start(context.Background())
	ws.Stop()
	ws.Start(context.Background())
	ws.Stop()

	if w.starts != 2 || w.stops != 2 {
		t.Errorf("expected 2 starts and 2 stops, got %d and %d", w.starts, w.stops)
	}
}

func TestWorkers_Run_StopsOnCancel(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if w.stops != 1 {
		t.Errorf("expected Stop after cancel, got %d", w.stops)
	}
}
