// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import "fmt"

// Kind classifies a resolution Failure (spec §7).
type Kind int

const (
	KindEncoding Kind = iota
	KindFormat
	KindProtocol
	KindPolicy
	KindTimeout
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "ENCODING"
	case KindFormat:
		return "FORMAT"
	case KindProtocol:
		return "PROTOCOL"
	case KindPolicy:
		return "POLICY"
	case KindTimeout:
		return "TIMEOUT"
	case KindCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Failure is the typed error the state machine returns from S_FAIL
// (spec §4.7, §7): every terminal, non-answer outcome carries a Kind
// and the query name/type it was resolving.
type Failure struct {
	Kind   Kind
	Name   string
	QType  string
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("resolver: %s %s %s: %s: %v", f.Kind, f.Name, f.QType, f.Reason, f.Err)
	}
	return fmt.Sprintf("resolver: %s %s %s: %s", f.Kind, f.Name, f.QType, f.Reason)
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(kind Kind, name, qtype, reason string, err error) *Failure {
	return &Failure{Kind: kind, Name: name, QType: qtype, Reason: reason, Err: err}
}
