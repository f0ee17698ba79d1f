// Copyright 2023 KoKoKotlin
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package automaton

import (
	"encoding/binary"
	"math/bits"

	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"
)

// bitSetT is a fixed-size set of states; two sets
// over the same number of states have the same
// length, so equal sets compare equal word by word.
type bitSetT []uint64

func newBitSet(n int) bitSetT {
	return make([]uint64, (n+63)>>6)
}

// contains test whether value is present
func (s bitSetT) contains(e int) bool {
	idx := e >> 6
	if idx >= len(s) {
		return false
	}
	return (s[idx] & (uint64(1) << uint(e&0b111111))) != 0
}

// insert element to set, return true when set changed; false otherwise
func (s bitSetT) insert(e int) bool {
	idx := e >> 6
	bit := uint64(1) << uint(e&0b111111)
	if s[idx]&bit != 0 {
		return false
	}
	s[idx] |= bit
	return true
}

func (s bitSetT) equal(other bitSetT) bool {
	return slices.Equal(s, other)
}

// states returns the members in ascending order
func (s bitSetT) states() []State {
	out := make([]State, 0, s.len())
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, State(i<<6+b))
			w &= w - 1
		}
	}
	return out
}

func (s bitSetT) len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// arbitrary fixed keys; the hash only
// selects a bucket in subsetTable
const (
	sipKey0 = 0x736f6d6570736575
	sipKey1 = 0x646f72616e646f6d
)

func (s bitSetT) hash() uint64 {
	buf := make([]byte, 8*len(s))
	for i, w := range s {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return siphash.Hash(sipKey0, sipKey1, buf)
}

// subsetTable interns sets of states and numbers
// them in insertion order
type subsetTable struct {
	sets    []bitSetT
	buckets map[uint64][]int
}

func newSubsetTable() subsetTable {
	return subsetTable{buckets: make(map[uint64][]int)}
}

// intern returns the index of set, inserting it
// when it is not yet present
func (t *subsetTable) intern(set bitSetT) (idx int, added bool) {
	h := set.hash()
	for _, i := range t.buckets[h] {
		if t.sets[i].equal(set) {
			return i, false
		}
	}
	idx = len(t.sets)
	t.sets = append(t.sets, set)
	t.buckets[h] = append(t.buckets[h], idx)
	return idx, true
}

func (t *subsetTable) at(idx int) bitSetT {
	return t.sets[idx]
}

func (t *subsetTable) len() int {
	return len(t.sets)
}

type queueT[T any] []T

func newQueue[T any]() queueT[T] {
	var q queueT[T]
	return q
}

// Empty test whether queue is empty
func (q *queueT[T]) empty() bool {
	return len(*q) == 0
}

// Pop discard next element (if any)
func (q *queueT[T]) pop() {
	if len(*q) > 0 {
		*q = (*q)[1:] // remove first element
	}
}

// Front access next element
func (q *queueT[T]) front() T {
	return (*q)[0] // return first element
}

// Push element to queue
func (q *queueT[T]) push(e T) {
	*q = append(*q, e) // append to end
}
