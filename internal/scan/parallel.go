package scan

import (
	"runtime"
	"sync"

	"github.com/inodb/mutscan/internal/translate"
)

// WorkItem is one candidate substitution to translate.
type WorkItem struct {
	Seq   int  // enumeration order
	Index int  // 0-based nucleotide index
	Base  byte // substituted base
}

// WorkResult holds the translation of a single candidate.
type WorkResult struct {
	Seq     int
	Index   int
	Base    byte
	Protein string
	Err     error
}

// ParallelTranslate translates candidates of seq using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelTranslate(seq string, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			// Each worker mutates its own copy and restores the base afterwards.
			buf := []byte(seq)
			for item := range items {
				buf[item.Index] = item.Base
				protein, err := translate.TranslateBytes(buf)
				buf[item.Index] = seq[item.Index]
				results <- WorkResult{
					Seq:     item.Seq,
					Index:   item.Index,
					Base:    item.Base,
					Protein: protein,
					Err:     err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
