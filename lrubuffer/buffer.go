// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lrubuffer implements a byte-bounded most-recently-used cache keyed
// by element id, used to avoid repeated disc reads of per-element strain or
// displacement tensors
package lrubuffer

import "container/list"

// Value is anything cacheable that can report its own nominal byte footprint
type Value interface {
	SizeBytes() int64
}

type entry struct {
	key   int
	value Value
}

// Buffer is a simple dictionary-backed cache with a maximum total size. The
// least-recently-used entries are evicted first when the limit is hit.
type Buffer struct {
	maxSizeBytes int64
	totalSize    int64
	order        *list.List // front = most-recently-used
	index        map[int]*list.Element

	hits   int64
	misses int64
}

// NewBuffer creates a buffer bounded to maxSizeMB megabytes
func NewBuffer(maxSizeMB int) *Buffer {
	return &Buffer{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
		order:        list.New(),
		index:        make(map[int]*list.Element),
	}
}

// Contains reports whether key is buffered, updating the hit/miss counters
func (o *Buffer) Contains(key int) bool {
	_, ok := o.index[key]
	if ok {
		o.hits++
	} else {
		o.misses++
	}
	return ok
}

// Get returns the value for key and marks it most-recently-used. Must only
// be called after Contains(key) returned true.
func (o *Buffer) Get(key int) Value {
	el := o.index[key]
	o.order.MoveToFront(el)
	return el.Value.(*entry).value
}

// Add inserts key/value and evicts least-recently-used entries until the
// total size is within the configured budget
func (o *Buffer) Add(key int, value Value) {
	if el, ok := o.index[key]; ok {
		o.totalSize -= el.Value.(*entry).value.SizeBytes()
		el.Value.(*entry).value = value
		o.totalSize += value.SizeBytes()
		o.order.MoveToFront(el)
	} else {
		el := o.order.PushFront(&entry{key: key, value: value})
		o.index[key] = el
		o.totalSize += value.SizeBytes()
	}
	for o.totalSize > o.maxSizeBytes && o.order.Len() > 0 {
		back := o.order.Back()
		e := back.Value.(*entry)
		o.totalSize -= e.value.SizeBytes()
		delete(o.index, e.key)
		o.order.Remove(back)
	}
}

// SizeMB returns the current total buffered size in megabytes
func (o *Buffer) SizeMB() float64 {
	return float64(o.totalSize) / (1024 * 1024)
}

// Efficiency returns hits/(hits+misses), or zero if Contains was never called
func (o *Buffer) Efficiency() float64 {
	total := o.hits + o.misses
	if total == 0 {
		return 0
	}
	return float64(o.hits) / float64(total)
}
