// Package stats keeps running min/max/sum/count aggregates per key and
// merges them across partitions.
package stats

import (
	"unsafe"

	"github.com/dolthub/swiss"

	"github.com/warpstreamlabs/stationstats/internal/fixed"
)

// Aggregate is the running summary of one key.
type Aggregate struct {
	Min   fixed.Tenths
	Max   fixed.Tenths
	Sum   fixed.Tenths
	Count uint64
}

// Empty returns the identity aggregate: merging it changes nothing.
func Empty() Aggregate {
	return Aggregate{Min: fixed.MaxTenths, Max: fixed.MinTenths}
}

// Add folds one measurement into a.
func (a *Aggregate) Add(v fixed.Tenths) {
	a.Min = min(a.Min, v)
	a.Max = max(a.Max, v)
	a.Sum += v
	a.Count++
}

// Merge folds another aggregate for the same key into a.
func (a *Aggregate) Merge(o Aggregate) {
	a.Min = min(a.Min, o.Min)
	a.Max = max(a.Max, o.Max)
	a.Sum += o.Sum
	a.Count += o.Count
}

// Mean is the rounded average in tenths. a must not be empty.
func (a Aggregate) Mean() fixed.Tenths {
	return fixed.Mean(a.Sum, a.Count)
}

// initialSize fits the ~400 keys of the usual weather station data without
// growing; the 1BRC rules allow up to 10k.
const initialSize = 1 << 10

// Table aggregates the records of one partition. Keys are borrowed from the
// scanned buffer, so a Table must not outlive it. Not safe for concurrent
// use; each worker owns one.
type Table struct {
	m *swiss.Map[string, *Aggregate]
}

func NewTable() *Table {
	return &Table{m: swiss.NewMap[string, *Aggregate](initialSize)}
}

// Add records value v for key.
func (t *Table) Add(key []byte, v fixed.Tenths) {
	k := bytesToString(key)

	a, ok := t.m.Get(k)
	if !ok {
		e := Empty()
		a = &e
		t.m.Put(k, a)
	}
	a.Add(v)
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return t.m.Count() }

// Each calls fn for every key in unspecified order.
func (t *Table) Each(fn func(key string, a Aggregate)) {
	t.m.Iter(func(k string, a *Aggregate) bool {
		fn(k, *a)
		return false
	})
}

func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
