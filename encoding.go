// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vrootfs

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/aibor/vrootfs/fserr"
)

// DefaultEncoding is used if no encoding is given.
const DefaultEncoding = "utf8"

// lookupEncoding returns the text encoding for the given WHATWG label, like
// "utf8", "latin1" or "utf-16le".
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fserr.Wrap(fserr.Unknown, err,
			"Unsupported encoding `"+name+"`!",
		)
	}

	return enc, nil
}
