package htab

import (
	"fmt"
	"hash/fnv"
	"unsafe"
)

func hashPointer[T any](p *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}

func hashAny(v interface{}) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", v)
	return h.Sum64()
}
