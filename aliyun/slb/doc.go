// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package slb provides typed access to the Server Load Balancer API: load
// balancers, TCP and HTTP listeners and backend server pools.
package slb
