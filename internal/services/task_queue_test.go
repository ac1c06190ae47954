package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeAudit_Constant(t *testing.T) {
	if TaskTypeAudit != "audit:write" {
		t.Errorf("TaskTypeAudit = %q, expected %q", TaskTypeAudit, "audit:write")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
	if err := queue.Close(); err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()

	err := queue.Enqueue(&AuditTask{Actor: "alice", Action: "CREATE", Target: "resource"})
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_ProcessorReceivesTask(t *testing.T) {
	queue := NewSyncQueue()

	var mu sync.Mutex
	var got *AuditTask
	done := make(chan struct{})

	queue.SetProcessor(func(ctx context.Context, task *AuditTask) error {
		mu.Lock()
		got = task
		mu.Unlock()
		close(done)
		return nil
	})

	actorID := uint(7)
	queue.Enqueue(&AuditTask{
		ActorID: &actorID,
		Actor:   "alice",
		Action:  "DELETE",
		Target:  "project",
		Details: "deleted project PRJ-001",
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if got.Actor != "alice" || got.Action != "DELETE" || got.Target != "project" {
		t.Errorf("processor received %+v", got)
	}
	if got.ActorID == nil || *got.ActorID != 7 {
		t.Error("ActorID should be 7")
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
