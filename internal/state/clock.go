package state

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out rectangle ids of the form "rect-<site>-<n>". The site is
// random per session and n only ever grows, so ids stay unique when shapes are
// deleted and new ones drawn.
type IDSource struct {
	site    string
	counter uint64
}

// NewIDSource creates an id source with a fresh session prefix.
func NewIDSource() *IDSource {
	return NewIDSourceForSite(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// NewIDSourceForSite creates an id source with a fixed prefix.
func NewIDSourceForSite(site string) *IDSource {
	return &IDSource{site: site}
}

// Site returns the session prefix.
func (s *IDSource) Site() string {
	return s.site
}

// Next returns the next id in sequence.
func (s *IDSource) Next() string {
	return fmt.Sprintf("rect-%s-%d", s.site, atomic.AddUint64(&s.counter, 1))
}

// Reserve makes sure Next never returns id. Ids minted by another session are
// left alone since their prefix can never match ours.
func (s *IDSource) Reserve(id string) {
	prefix := "rect-" + s.site + "-"
	if !strings.HasPrefix(id, prefix) {
		return
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(id, prefix), 10, 64)
	if err != nil {
		return
	}
	for {
		cur := atomic.LoadUint64(&s.counter)
		if n <= cur || atomic.CompareAndSwapUint64(&s.counter, cur, n) {
			return
		}
	}
}
