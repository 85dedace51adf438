package naming

import (
	"fmt"
	"sync"
)

// CollisionResolver tracks output stems claimed by input files and resolves
// duplicates by appending " - dupN" suffixes. Inputs with the same basename
// in different directories would otherwise share every artifact path in
// the flat output root. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // stem → input path that owns it
	counters map[string]int    // requested stem → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the stem input should use. If requested is unclaimed (or
// already owned by input), it is returned as-is. Otherwise a " - dupN"
// variant is generated.
func (cr *CollisionResolver) Resolve(input, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[requested]
	if !exists || owner == input {
		cr.owners[requested] = input
		return requested
	}

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := fmt.Sprintf("%s - dup%d", requested, counter)
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == input {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = input
			return candidate
		}
		counter++
	}
}
