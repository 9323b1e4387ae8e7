package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Defaults for the board closer
const (
	DefaultBoardCloserInterval = 5 * time.Minute
	boardCloserRunTimeout      = time.Minute
)

// BoardExpirer closes the posts whose meeting time has passed
type BoardExpirer interface {
	CloseExpired(ctx context.Context) (int, error)
}

// BoardCloser periodically marks past meetups as closed
type BoardCloser struct {
	boards   BoardExpirer
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewBoardCloser creates a new board closer job
func NewBoardCloser(boards BoardExpirer, interval time.Duration, logger *slog.Logger) *BoardCloser {
	if interval <= 0 {
		interval = DefaultBoardCloserInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardCloser{
		boards:   boards,
		interval: interval,
		logger:   logger.With(slog.String("job", "board_closer")),
	}
}

// Start runs a first pass right away and then one per interval
func (c *BoardCloser) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stopCh = stop
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(stop)
	c.logger.Info("board closer started", slog.Duration("interval", c.interval))
}

// Stop waits for the current pass to finish
func (c *BoardCloser) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Info("board closer stopped")
}

func (c *BoardCloser) run(stop <-chan struct{}) {
	defer c.wg.Done()

	c.closeExpired()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.closeExpired()
		case <-stop:
			return
		}
	}
}

func (c *BoardCloser) closeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), boardCloserRunTimeout)
	defer cancel()

	n, err := c.boards.CloseExpired(ctx)
	if err != nil {
		c.logger.Error("closing expired boards failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		c.logger.Info("closed expired boards", slog.Int("count", n))
	}
}

// RunOnce runs one pass (for testing or manual trigger)
func (c *BoardCloser) RunOnce(ctx context.Context) (int, error) {
	return c.boards.CloseExpired(ctx)
}

// IsRunning returns whether the closer is running
func (c *BoardCloser) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
