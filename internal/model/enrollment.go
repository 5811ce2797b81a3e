// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Enrollment is a pre-seeded whitelist entry. Only holders of a listed
// enrollment number may register.
type Enrollment struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}
