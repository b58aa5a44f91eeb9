// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses --filter expressions and applies them to query
// result sets. Filters prefixed with '_' are server-side: they are forwarded
// to the API as request parameters instead of being evaluated locally.
package filters
