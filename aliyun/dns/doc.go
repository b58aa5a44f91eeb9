// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dns provides typed access to the DNS API: domain resource records.
// DNS requests that carry a DomainName do not take a region; the underlying
// request signer handles that quirk.
package dns
