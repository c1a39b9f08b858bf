package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/domain"
)

type Analyzer interface {
	Analyze(ctx context.Context, productName, reviewText string) (domain.Review, error)
}

// Line is one JSONL record.
type Line struct {
	ProductName string `json:"product_name"`
	ReviewText  string `json:"review_text"`
}

type Result struct {
	Read     int
	Analyzed int
	Failed   int
}

// maxLine bounds a single JSONL record.
const maxLine = 1 << 20

// Run analyzes every record of r with at most workers concurrent calls.
// Bad lines are counted as failures and do not stop the run.
func Run(ctx context.Context, r io.Reader, a Analyzer, workers int) (Result, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg       sync.WaitGroup
		analyzed atomic.Int64
		failed   atomic.Int64
		res      Result
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		res.Read++

		var ln Line
		if err := json.Unmarshal([]byte(raw), &ln); err != nil {
			log.Warn().Int("line", lineNo).Err(err).Msg("skipping malformed line")
			failed.Add(1)
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			res.Analyzed, res.Failed = int(analyzed.Load()), int(failed.Load())
			return res, fmt.Errorf("acquire worker: %w", err)
		}

		wg.Add(1)
		go func(n int, ln Line) {
			defer wg.Done()
			defer sem.Release(1)

			rev, err := a.Analyze(ctx, ln.ProductName, ln.ReviewText)
			if err != nil {
				failed.Add(1)
				log.Warn().Int("line", n).Err(err).Msg("analyze failed")
				return
			}
			analyzed.Add(1)
			log.Info().Int("line", n).Int64("id", rev.ID).Str("sentiment", string(rev.Sentiment)).Msg("analyze ok")
		}(lineNo, ln)
	}
	wg.Wait()
	res.Analyzed, res.Failed = int(analyzed.Load()), int(failed.Load())
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	return res, nil
}
