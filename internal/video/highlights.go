package video

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ppiankov/clipverity/internal/model"
)

// RawHighlights runs the full indexing lifecycle for a video URL and returns
// the provider's raw clip records: ensure index, submit, wait, analyze.
// If analyze fails the built-in highlight summary is used instead.
func (c *Client) RawHighlights(ctx context.Context, videoURL string) ([]model.RawClip, error) {
	name := c.config.IndexName
	if name == "" {
		name = IndexName(videoURL)
	}

	indexID, err := c.EnsureIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	taskID, err := c.CreateTask(ctx, indexID, videoURL)
	if err != nil {
		return nil, err
	}
	c.log.Info("submitted video", slog.String("index", name), slog.String("task", taskID))

	videoID, err := c.WaitForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	raw, err := c.Analyze(ctx, videoID)
	if err == nil {
		return raw, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	c.log.Warn("analyze failed, falling back to highlights", slog.String("video", videoID), slog.Any("error", err))
	return c.Highlights(ctx, videoID)
}
