// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// Package memory provides byte sizes, the page pool and the scoped arena
// allocators backing exchange partitions.
package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// Size implements a byte size value with human friendly formatting and
// parsing. It also implements flag.Value.
type Size int64

// base-2 size constants.
const (
	B Size = 1 << (10 * iota)
	KB
	MB
	GB
	TB
)

// Int returns size as int.
func (size Size) Int() int { return int(size) }

// Int64 returns size as int64.
func (size Size) Int64() int64 { return int64(size) }

// Float64 returns size as float64.
func (size Size) Float64() float64 { return float64(size) }

// KB returns size in kilobytes.
func (size Size) KB() float64 { return size.Float64() / KB.Float64() }

// MB returns size in megabytes.
func (size Size) MB() float64 { return size.Float64() / MB.Float64() }

// GB returns size in gigabytes.
func (size Size) GB() float64 { return size.Float64() / GB.Float64() }

// String converts size to a string using appropriate prefixes.
func (size Size) String() string {
	if size == 0 {
		return "0"
	}
	switch {
	case size >= TB:
		return fmt.Sprintf("%.1f TB", size.Float64()/TB.Float64())
	case size >= GB:
		return fmt.Sprintf("%.1f GB", size.Float64()/GB.Float64())
	case size >= MB:
		return fmt.Sprintf("%.1f MB", size.Float64()/MB.Float64())
	case size >= KB:
		return fmt.Sprintf("%.1f KB", size.Float64()/KB.Float64())
	default:
		return strconv.FormatInt(size.Int64(), 10) + " B"
	}
}

// Set parses a string as a size, accepting an optional unit prefix in any
// casing and an optional trailing "B".
func (size *Size) Set(s string) error {
	if s == "" {
		return fmt.Errorf("empty size")
	}

	p := strings.TrimSpace(s)
	if last := p[len(p)-1]; last == 'b' || last == 'B' {
		p = p[:len(p)-1]
	}
	p = strings.TrimSpace(p)

	unit := B
	if len(p) > 0 {
		switch p[len(p)-1] {
		case 'k', 'K':
			unit = KB
			p = p[:len(p)-1]
		case 'm', 'M':
			unit = MB
			p = p[:len(p)-1]
		case 'g', 'G':
			unit = GB
			p = p[:len(p)-1]
		case 't', 'T':
			unit = TB
			p = p[:len(p)-1]
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %v", s, err)
	}

	*size = Size(value * unit.Float64())
	return nil
}

// Type implements pflag.Value.
func (Size) Type() string { return "memory.Size" }
