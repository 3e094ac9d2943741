// Package vect provides Vect, a growable array built on ledger-charged raw
// storage.
//
// A Vect owns one buffer allocated under mem.TagVector and a length. Slots
// below the length hold live elements; the rest are unused. Capacity doubles
// when a push or insert finds the buffer full. Zero-sized element types
// never allocate and report an unbounded capacity.
//
//	v := vect.New[string]()
//	v.Push("a")
//	v.Push("c")
//	v.Insert(1, "b")
//	s, _ := v.Pop()       // "c"
//	first := v.Remove(0)  // "a"
//	v.Drop()
//
// # Ownership
//
// Elements moved out by Pop, Remove or an iterator belong to the caller.
// Elements still held when a Vect, IntoIter or Drain is dropped are
// destroyed exactly once: if the element type implements
// stringsengine.Dropper, its Drop method runs. Drop must be called
// explicitly; the garbage collector reclaims memory but does not run
// element destructors or settle the ledger.
//
// # Iterators
//
// Drain empties the Vect at once and yields its former elements lazily.
// IntoIter moves the elements and the buffer out of the Vect. Both yield
// from either end and both destroy what was not yielded when dropped. Seq
// and Backward wrap them for range loops and drop on loop exit:
//
//	for s := range v.Drain().Seq() {
//		if s == "stop" {
//			break // remaining elements destroyed, Vect usable again
//		}
//	}
//
// While a Drain is open the source Vect is borrowed: mutating or dropping it
// is a fatal error.
//
// A Vect is single-owner and not safe for concurrent use.
package vect
