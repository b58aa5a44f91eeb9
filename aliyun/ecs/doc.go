// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ecs provides typed access to the Elastic Compute Service API:
// regions, zones, instances, disks, snapshots, images and security groups.
package ecs
