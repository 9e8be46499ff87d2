package download

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ytget/yt-browser/internal/model"
)

func TestBuildArgsVideoQuality(t *testing.T) {
	q := NewQueue(1)

	task := &Task{Request: Request{
		URL:       "https://www.youtube.com/watch?v=abc",
		OutputDir: "/downloads",
		Settings:  model.ItemSettings{Quality: "best"},
	}}

	args := q.buildArgs(task)
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-f "+FormatBest) {
		t.Errorf("Expected best format selector, got %q", joined)
	}
	if !strings.Contains(joined, "--no-playlist") {
		t.Errorf("Expected --no-playlist, got %q", joined)
	}
	if args[len(args)-1] != task.URL {
		t.Errorf("Expected URL as last argument, got %q", args[len(args)-1])
	}
}

func TestBuildArgsAudioOnly(t *testing.T) {
	q := NewQueue(1)

	task := &Task{Request: Request{
		URL:      "https://music.youtube.com/watch?v=abc",
		Settings: model.ItemSettings{AudioOnly: true, Quality: "medium"},
	}}

	joined := strings.Join(q.buildArgs(task), " ")
	if !strings.Contains(joined, "-x") {
		t.Errorf("Expected audio extraction flag, got %q", joined)
	}
	if strings.Contains(joined, FormatMedium) {
		t.Errorf("Expected no video format selector for audio-only, got %q", joined)
	}
}

func TestBuildArgsDefaultsToMedium(t *testing.T) {
	q := NewQueue(1)

	task := &Task{Request: Request{URL: "https://www.youtube.com/watch?v=abc"}}

	joined := strings.Join(q.buildArgs(task), " ")
	if !strings.Contains(joined, FormatMedium) {
		t.Errorf("Expected medium format selector, got %q", joined)
	}
}

func TestSubmitRunsAllTasks(t *testing.T) {
	q := NewQueue(2)
	// "true" ignores its arguments and exits cleanly
	q.SetBinaryPath("true")

	done := make(chan TaskStatus, 10)
	q.SetUpdateCallback(func(task *Task) {
		if task.Status == TaskStatusCompleted || task.Status == TaskStatusError {
			done <- task.Status
		}
	})

	requests := []Request{
		{TaskID: "t1", URL: "https://www.youtube.com/watch?v=a"},
		{TaskID: "t2", URL: "https://www.youtube.com/watch?v=b"},
		{TaskID: "t3", URL: "https://www.youtube.com/watch?v=c"},
	}
	if err := q.Submit(context.Background(), requests); err != nil {
		t.Fatalf("Expected submit to succeed, got %v", err)
	}

	for i := 0; i < len(requests); i++ {
		select {
		case status := <-done:
			if status != TaskStatusCompleted {
				t.Errorf("Expected completed status, got %v", status)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("Timed out waiting for task %d to finish", i+1)
		}
	}

	if len(q.GetAllTasks()) != 3 {
		t.Errorf("Expected 3 tasks tracked, got %d", len(q.GetAllTasks()))
	}
}

func TestSubmitEmpty(t *testing.T) {
	q := NewQueue(1)
	if err := q.Submit(context.Background(), nil); err == nil {
		t.Error("Expected error for empty submission")
	}
}
