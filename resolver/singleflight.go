// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"sync"

	dns "github.com/quillresolve/dns"
)

// flightGroup ensures at most one network transaction per fingerprint
// is in flight at a time; concurrent callers for the same fingerprint
// share the result (spec §4.7 "Concurrency: ... single-flight").
type flightGroup struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	done chan struct{}
	msg  *dns.Message
	err  error
}

// do runs fn for key if no call for key is in flight, otherwise waits
// for the in-flight call's result. Cancellation of one waiter never
// cancels fn for the others still waiting (spec §5 "a query that
// started the network request continues only if other peers are
// still awaiting" — enforced by the caller passing fn a context tied
// to the ORIGINATING caller, not each waiter).
func (g *flightGroup) do(key string, fn func() (*dns.Message, error)) (*dns.Message, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		if c.err != nil {
			return nil, c.err
		}
		return c.msg, nil
	}

	c := &call{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	msg, err := fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	c.msg, c.err = msg, err
	close(c.done)

	if err != nil {
		return nil, err
	}
	return msg, nil
}
