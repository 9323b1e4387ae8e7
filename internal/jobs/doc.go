// Package jobs implements background work of the RunningMate API.
//
// Jobs run on their own goroutine, independently of HTTP request handling,
// and follow the same lifecycle:
//
//	closer := jobs.NewBoardCloser(boardService, cfg.Jobs.BoardCloserInterval, logger)
//	closer.Start()
//	defer closer.Stop()
//
// Errors are logged and the job keeps its schedule.
package jobs
