package video

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// maxTaskPolls bounds WaitForTask to roughly an hour at the default interval
const maxTaskPolls = 720

// Task statuses that end polling
const (
	TaskReady    = "ready"
	TaskFailed   = "failed"
	TaskCanceled = "canceled"
)

// pollSleepFunc waits between task status checks; replaced in tests
var pollSleepFunc = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Task is an indexing task
type Task struct {
	ID      string `json:"_id"`
	Status  string `json:"status"`
	VideoID string `json:"video_id"`
}

// TaskError reports an indexing task that ended without a usable video
type TaskError struct {
	TaskID string
	Status string
}

func (e *TaskError) Error() string {
	if e.Status == TaskReady {
		return fmt.Sprintf("indexing task %s: missing video_id after indexing", e.TaskID)
	}
	return fmt.Sprintf("indexing task %s failed with status %s", e.TaskID, e.Status)
}

// CreateTask submits a video URL for indexing and returns the task ID
func (c *Client) CreateTask(ctx context.Context, indexID, videoURL string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("index_id", indexID); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	if err := form.WriteField("video_url", videoURL); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}

	var task Task
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", &buf, form.FormDataContentType(), &task); err != nil {
		return "", err
	}
	if task.ID == "" {
		return "", fmt.Errorf("create task: response carried no task id")
	}

	return task.ID, nil
}

// GetTask retrieves the current state of an indexing task
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.doJSON(ctx, "get task", http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = taskID
	}
	return &task, nil
}

// WaitForTask polls a task until it reaches a terminal status and returns its video ID
func (c *Client) WaitForTask(ctx context.Context, taskID string) (string, error) {
	interval := time.Duration(c.config.PollInterval) * time.Second

	for i := 0; i < maxTaskPolls; i++ {
		if i > 0 {
			if err := pollSleepFunc(ctx, interval); err != nil {
				return "", fmt.Errorf("wait for task %s: %w", taskID, err)
			}
		}

		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return "", err
		}
		c.log.Debug("indexing task status", slog.String("task", taskID), slog.String("status", task.Status))

		switch task.Status {
		case TaskReady:
			if task.VideoID == "" {
				return "", &TaskError{TaskID: taskID, Status: task.Status}
			}
			return task.VideoID, nil
		case TaskFailed, TaskCanceled:
			return "", &TaskError{TaskID: taskID, Status: task.Status}
		}
	}

	return "", fmt.Errorf("wait for task %s: still pending after %d polls", taskID, maxTaskPolls)
}
