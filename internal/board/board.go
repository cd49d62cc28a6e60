// SPDX-License-Identifier: BSD-3-Clause

// Package board declares immutable hardware board descriptors: what a
// controller is, as opposed to what state it happens to be in. A
// Descriptor never changes after construction, so it carries no lock and
// needs none.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openfan/openfand/internal/apierr"
)

// Descriptor is the immutable shape of one USB-attached fan controller
// variant: how many fan channels it exposes, which USB device it
// enumerates as, and the value ranges its wire protocol accepts.
type Descriptor struct {
	Name          string
	FanCount      int
	USBVendorID   uint16
	USBProductID  uint16
	BaudRate      int
	MaxPWMPercent int
	MinTargetRPM  int
	MaxTargetRPM  int
}

// ValidFanID reports whether id addresses a fan channel this board
// exposes.
func (d Descriptor) ValidFanID(id int) bool {
	return id >= 0 && id < d.FanCount
}

// ValidPWM reports whether pct is an acceptable PWM percentage for this
// board.
func (d Descriptor) ValidPWM(pct int) bool {
	return pct >= 0 && pct <= d.MaxPWMPercent
}

// ValidTargetRPM reports whether rpm falls within the board's
// acceptable target-RPM range.
func (d Descriptor) ValidTargetRPM(rpm int) bool {
	return rpm >= d.MinTargetRPM && rpm <= d.MaxTargetRPM
}

// Standard is the 10-channel OpenFAN controller board: the default
// board selector in static configuration.
//
// Values are those of the reference OpenFAN Standard board: USB VID
// 0x2E8A (Raspberry Pi Foundation, used by the RP2040-based controller
// firmware), PID 0x000A, 115200 baud, RPM range 480-16000 (below 480 a
// fan is considered stopped rather than slow).
func Standard() Descriptor {
	return Descriptor{
		Name:          "OpenFAN Standard",
		FanCount:      10,
		USBVendorID:   0x2E8A,
		USBProductID:  0x000A,
		BaudRate:      115200,
		MaxPWMPercent: 100,
		MinTargetRPM:  480,
		MaxTargetRPM:  16000,
	}
}

// Custom builds a descriptor for a board selector of the form
// "custom:N": same electrical and protocol parameters as Standard, but
// with an arbitrary channel count (used for bench rigs and partial
// boards). n must be in 1..=16.
func Custom(n int) Descriptor {
	d := Standard()
	d.Name = fmt.Sprintf("Custom Board (%d fans)", n)
	d.FanCount = n
	return d
}

// MaxFanCount is the upper bound on FanCount any descriptor may carry,
// per the board-selector grammar.
const MaxFanCount = 16

// ParseSelector parses a static-config "board" value: either the literal
// "standard" or "custom:N" where 1 <= N <= MaxFanCount.
func ParseSelector(selector string) (Descriptor, error) {
	if selector == "standard" {
		return Standard(), nil
	}

	n, ok := strings.CutPrefix(selector, "custom:")
	if !ok {
		return Descriptor{}, apierr.Newf(apierr.Config,
			"board selector %q must be \"standard\" or \"custom:N\"", selector)
	}

	count, err := strconv.Atoi(n)
	if err != nil {
		return Descriptor{}, apierr.Wrap(apierr.Config,
			fmt.Sprintf("board selector %q has a non-numeric fan count", selector), err)
	}
	if count < 1 || count > MaxFanCount {
		return Descriptor{}, apierr.Newf(apierr.Config,
			"board selector %q: fan count must be 1..=%d", selector, MaxFanCount)
	}

	return Custom(count), nil
}
