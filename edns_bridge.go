// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import "github.com/quillresolve/dns/edns"

// EDNSOption is an EDNS0 option (C8); see package edns for the TLV
// codec and per-code dispatch.
type EDNSOption = edns.Option
