package util

import (
	"context"
	"log"
	"sync"
	"time"

	"internhunt-engine/internal/domain"
)

// BoardFunc fetches the raw records of one board.
type BoardFunc func(ctx context.Context, b domain.Board) ([]domain.RawRecord, error)

// FetchBoards runs fn over boards with a small worker pool. A failing board is
// logged and skipped; the rest continue. Records come back in board order no
// matter which worker finished first.
func FetchBoards(ctx context.Context, source string, boards []domain.Board, workers int, timeout time.Duration, fn BoardFunc) (records []domain.RawRecord, failed []string) {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(boards) {
		workers = len(boards)
	}

	results := make([][]domain.RawRecord, len(boards))
	errs := make([]error, len(boards))
	workCh := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range workCh {
				b := boards[idx]
				cctx, cancel := context.WithTimeout(ctx, timeout)
				recs, err := fn(cctx, b)
				cancel()
				if err != nil {
					log.Printf("[ats:%s] company=%q board=%q err=%v", source, b.Name, b.Board, err)
					errs[idx] = err
					continue
				}
				results[idx] = recs
			}
		}()
	}

	go func() {
		defer close(workCh)
		for i := range boards {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	wg.Wait()

	for i, b := range boards {
		if errs[i] != nil {
			failed = append(failed, source+":"+b.Name)
			continue
		}
		records = append(records, results[i]...)
	}

	log.Printf("[%s] Processed: %d", source, len(records))
	return records, failed
}

// Record wraps one decoded source object.
func Record(kind domain.SourceKind, b domain.Board, fields map[string]any) domain.RawRecord {
	return domain.RawRecord{
		Kind:    kind,
		Company: b.Name,
		Board:   b.Board,
		Label:   b.Label,
		Fields:  fields,
	}
}
