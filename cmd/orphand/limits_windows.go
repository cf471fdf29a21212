// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// setLimits is a no-op on Windows since it's not required there.
func setLimits() error {
	return nil
}
