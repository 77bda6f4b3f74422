// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the duration a session token remains valid.
	//
	// Fixed at 7 days: tokens are stateless and never revoked server-side,
	// so expiry is the only mechanism that ends a session.
	SessionTokenTTL = 7 * 24 * time.Hour
)
