// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates the nested JSON documents returned by the Aliyun
// API to extract values for filtering and ad-hoc --query output.
package driller
