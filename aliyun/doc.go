// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aliyun implements the signed request plumbing shared by every
// Aliyun service client: credential resolution, parameter canonicalization
// and HMAC-SHA1 signing, and decoding of the provider's response envelope.
//
// Service packages (ecs, slb, dns) compose a Connection and expose thin
// typed methods over it. The Connection itself is safe for concurrent use;
// each request is independent and carries a fresh nonce and timestamp.
package aliyun
