package faq

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// localize returns a copy of record with question and answer translated into lang.
// Both fields resolve concurrently; ID and timestamps pass through.
func (s *service) localize(ctx context.Context, record Record, lang string) Record {
	out := record
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Question = s.translator.Translate(ctx, record.Question, lang)
	}()
	go func() {
		defer wg.Done()
		out.Answer = s.translator.Translate(ctx, record.Answer, lang)
	}()
	wg.Wait()
	return out
}

// localizeAll translates every record concurrently. Position i of the result always
// corresponds to position i of records, whatever order the tasks finish in.
func (s *service) localizeAll(ctx context.Context, records []Record, lang string) []Record {
	out := make([]Record, len(records))
	var g errgroup.Group
	if s.cfg.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.MaxConcurrency)
	}
	for i, record := range records {
		g.Go(func() error {
			out[i] = s.localize(ctx, record, lang)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
