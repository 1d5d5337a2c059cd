// Package stationstats computes per-key min/mean/max over `key;value` lines,
// splitting the input across workers and merging their tables.
package stationstats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/warpstreamlabs/stationstats/internal/report"
	"github.com/warpstreamlabs/stationstats/internal/scan"
	"github.com/warpstreamlabs/stationstats/internal/stats"
)

// checkEvery is how many records a task scans between cancellation checks.
const checkEvery = 1 << 16

type task struct {
	id    int
	data  []byte
	span  scan.Span
	table *stats.Table
}

func newTask(id int, data []byte, span scan.Span) *task {
	return &task{
		id:    id,
		data:  data,
		span:  span,
		table: stats.NewTable(),
	}
}

func (t *task) run(ctx context.Context) error {
	s := scan.New(t.data, t.span.Align(t.data))

	for n := 1; s.Scan(); n++ {
		t.table.Add(s.Key(), s.Value())

		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	if err := s.Err(); err != nil {
		return fmt.Errorf("task %d: %w", t.id, err)
	}
	return nil
}

func splitIntoTasks(data []byte, taskCount int) []*task {
	spans := scan.Partition(len(data), taskCount)

	tasks := make([]*task, len(spans))
	for i, span := range spans {
		tasks[i] = newTask(i, data, span)
	}
	return tasks
}

func executeTasks(ctx context.Context, tasks []*task) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return t.run(ctx)
		})
	}
	return g.Wait()
}

// Collect aggregates data with the given number of workers. data must not
// be modified until Collect returns; the result does not reference it.
func Collect(ctx context.Context, data []byte, workers int) (stats.Global, error) {
	tasks := splitIntoTasks(data, workers)

	if err := executeTasks(ctx, tasks); err != nil {
		return nil, err
	}

	tables := make([]*stats.Table, len(tasks))
	for i, t := range tasks {
		tables[i] = t.table
	}
	return stats.Merge(tables...), nil
}

// Run aggregates data and renders the result as
// {key=min/mean/max, ...} in ascending key order. The output is the same for
// any worker count. The first malformed record aborts the whole run.
func Run(ctx context.Context, data []byte, workers int) (string, error) {
	g, err := Collect(ctx, data, workers)
	if err != nil {
		return "", err
	}
	return report.Format(g), nil
}
