// Package internal holds iterator helpers shared by the assembler and its
// output writers.
package internal

import (
	"iter"
)

// IterSeqConcat yields every value of each sequence in turn.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// IterSeq2Concat yields every pair of each sequence in turn, such as the
// address and object code pairs of consecutive source lines.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
