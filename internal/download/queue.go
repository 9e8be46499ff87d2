package download

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// TaskStatus represents the lifecycle state of a queued download
type TaskStatus string

// Task statuses
const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusRunning   TaskStatus = "Running"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusError     TaskStatus = "Error"
)

// Queue defaults
const (
	DefaultBinaryName  = "yt-dlp"
	DefaultMaxParallel = 2
	MaxParallelLimit   = 10

	OutputTemplate = "%(title)s.%(ext)s"
)

// Format selectors per quality preset
const (
	FormatBest   = "bv*+ba/b"
	FormatMedium = "bv*[height<=720]+ba/b[height<=720]"
)

// Task is a Request with execution state attached
type Task struct {
	Request
	Status     TaskStatus
	LastError  string
	FinishedAt time.Time
}

// Queue runs download requests through the yt-dlp binary, at most
// maxParallel at a time. It implements Submitter.
type Queue struct {
	tasks       map[string]*Task
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	binaryPath  string
	onUpdate    func(*Task)
}

// NewQueue creates a download queue using the yt-dlp binary on PATH
func NewQueue(maxParallel int) *Queue {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	if maxParallel > MaxParallelLimit {
		maxParallel = MaxParallelLimit
	}
	return &Queue{
		tasks:       make(map[string]*Task),
		maxParallel: maxParallel,
		binaryPath:  DefaultBinaryName,
	}
}

// SetBinaryPath overrides the yt-dlp binary location
func (q *Queue) SetBinaryPath(path string) {
	q.binaryPath = path
}

// SetUpdateCallback sets the callback function for task updates
func (q *Queue) SetUpdateCallback(callback func(*Task)) {
	q.onUpdate = callback
}

// Submit enqueues the requests and starts workers up to the parallel limit
func (q *Queue) Submit(ctx context.Context, requests []Request) error {
	if len(requests) == 0 {
		return fmt.Errorf("no requests to submit")
	}

	q.tasksMutex.Lock()
	queued := make([]*Task, 0, len(requests))
	for i := range requests {
		task := &Task{Request: requests[i], Status: TaskStatusPending}
		q.tasks[task.TaskID] = task
		queued = append(queued, task)
	}
	starting := q.maxParallel - q.activeCount
	q.tasksMutex.Unlock()

	log.Printf("Queued %d downloads", len(queued))

	for i := 0; i < starting && i < len(queued); i++ {
		go q.runTask(ctx, queued[i])
	}
	return nil
}

// GetTask returns a task by ID
func (q *Queue) GetTask(id string) (*Task, bool) {
	q.tasksMutex.RLock()
	defer q.tasksMutex.RUnlock()
	task, exists := q.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks
func (q *Queue) GetAllTasks() []*Task {
	q.tasksMutex.RLock()
	defer q.tasksMutex.RUnlock()

	tasks := make([]*Task, 0, len(q.tasks))
	for _, task := range q.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// runTask executes one download through the yt-dlp binary
func (q *Queue) runTask(ctx context.Context, task *Task) {
	q.tasksMutex.Lock()
	if task.Status != TaskStatusPending {
		q.tasksMutex.Unlock()
		return
	}
	q.activeCount++
	task.Status = TaskStatusRunning
	q.tasksMutex.Unlock()
	q.notifyUpdate(task)

	defer func() {
		q.tasksMutex.Lock()
		q.activeCount--
		q.tasksMutex.Unlock()
		q.startNextPendingTask(ctx)
	}()

	args := q.buildArgs(task)
	cmd := exec.CommandContext(ctx, q.binaryPath, args...)
	output, err := cmd.CombinedOutput()

	q.tasksMutex.Lock()
	if err != nil {
		task.Status = TaskStatusError
		task.LastError = fmt.Sprintf("%v: %s", err, truncateOutput(output))
		log.Printf("Download failed for task %s: %v", task.TaskID, err)
	} else {
		task.Status = TaskStatusCompleted
	}
	task.FinishedAt = time.Now()
	q.tasksMutex.Unlock()

	q.notifyUpdate(task)
}

// buildArgs assembles the yt-dlp invocation for a request
func (q *Queue) buildArgs(task *Task) []string {
	args := []string{
		"-o", filepath.Join(task.OutputDir, OutputTemplate),
		"--no-playlist",
		"--restrict-filenames",
	}

	if task.Settings.AudioOnly || task.Settings.Quality == "audio" {
		args = append(args, "-x")
	} else if task.Settings.Quality == "best" {
		args = append(args, "-f", FormatBest)
	} else {
		args = append(args, "-f", FormatMedium)
	}

	return append(args, task.URL)
}

// startNextPendingTask starts the next pending task if there is capacity
func (q *Queue) startNextPendingTask(ctx context.Context) {
	q.tasksMutex.Lock()
	defer q.tasksMutex.Unlock()

	if q.activeCount >= q.maxParallel {
		return
	}

	for _, task := range q.tasks {
		if task.Status == TaskStatusPending {
			go q.runTask(ctx, task)
			return
		}
	}
}

// notifyUpdate calls the update callback if set
func (q *Queue) notifyUpdate(task *Task) {
	if q.onUpdate != nil {
		q.onUpdate(task)
	}
}

func truncateOutput(output []byte) string {
	const limit = 300
	if len(output) > limit {
		output = output[len(output)-limit:]
	}
	return string(output)
}
