package queue

import (
	"cmp"
	"container/list"
	"sort"
)

// OrderedBucketQueue maps a totally ordered key K to a FIFO sequence of
// values V. PushBack appends to key k's sequence; PopFirstBack removes and
// returns the front value of the smallest non-empty key, and deletes the
// key once its sequence drains.
//
// Go has no ordered map, so this keeps values bucketed by key in a
// map[K]*list.List plus a separately maintained sorted key index.
type OrderedBucketQueue[K cmp.Ordered, V any] struct {
	buckets map[K]*list.List
	keys    []K // kept sorted ascending
}

// New creates an empty queue.
func New[K cmp.Ordered, V any]() *OrderedBucketQueue[K, V] {
	return &OrderedBucketQueue[K, V]{
		buckets: make(map[K]*list.List),
	}
}

// PushBack appends v to the sequence for key k, creating the bucket (and
// inserting k into the sorted key index) if necessary.
func (q *OrderedBucketQueue[K, V]) PushBack(k K, v V) {
	bucket, ok := q.buckets[k]
	if !ok {
		bucket = list.New()
		q.buckets[k] = bucket
		q.insertKey(k)
	}
	bucket.PushBack(v)
}

// PopFirstBack removes and returns the front value of the smallest
// non-empty key's sequence. The second return is false if the queue is
// empty.
func (q *OrderedBucketQueue[K, V]) PopFirstBack() (V, bool) {
	var zero V
	if len(q.keys) == 0 {
		return zero, false
	}
	k := q.keys[0]
	bucket := q.buckets[k]
	front := bucket.Front()
	bucket.Remove(front)
	if bucket.Len() == 0 {
		delete(q.buckets, k)
		q.keys = q.keys[1:]
	}
	return front.Value.(V), true
}

// Len returns the number of distinct keys currently holding values.
func (q *OrderedBucketQueue[K, V]) Len() int {
	return len(q.keys)
}

// IsEmpty reports whether the queue holds no values at all.
func (q *OrderedBucketQueue[K, V]) IsEmpty() bool {
	return len(q.keys) == 0
}

func (q *OrderedBucketQueue[K, V]) insertKey(k K) {
	i := sort.Search(len(q.keys), func(i int) bool { return q.keys[i] >= k })
	q.keys = append(q.keys, k)
	copy(q.keys[i+1:], q.keys[i:])
	q.keys[i] = k
}
