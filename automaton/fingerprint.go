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
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a digest of the structure of a:
// its variant, alphabet, states, transitions (in order)
// and initial and final states. The active configuration
// does not contribute to the digest.
func Fingerprint(a Automaton) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("automaton: blake2b.New256: " + err.Error())
	}
	o := a.Options()
	putInt(h, int64(a.Variant()))
	putInt(h, int64(len(o.Alphabet)))
	for _, s := range o.Alphabet {
		putInt(h, int64(s))
	}
	putInt(h, int64(o.StateCount))
	for _, name := range o.StateNames {
		putInt(h, int64(len(name)))
		h.Write([]byte(name))
	}
	putInt(h, int64(len(o.Transitions)))
	for _, t := range o.Transitions {
		putInt(h, int64(t.Symbol))
		putInt(h, int64(t.From))
		putInt(h, int64(t.To))
	}
	for _, set := range [][]State{o.InitialStates, o.FinalStates} {
		putInt(h, int64(len(set)))
		for _, s := range set {
			putInt(h, int64(s))
		}
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func putInt(h hash.Hash, v int64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	h.Write(buf[:n])
}
