// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	PinsPerBank   = 8
	BanksPerGroup = 4
	PinsPerGroup  = PinsPerBank * BanksPerGroup
)

// Group returns the register group of pin n.
func Group(n int) int { return n / PinsPerGroup }

// Bank returns the bank of pin n within its group.
func Bank(n int) int { return (n / PinsPerBank) % BanksPerGroup }

// Index returns the position of pin n within its bank.
func Index(n int) int { return n % PinsPerBank }

// Bit returns the mask of pin n in each of its group's registers.
func Bit(n int) uint32 {
	return 1 << uint(Index(n)+PinsPerBank*Bank(n))
}

// BankName returns the letter name of the global bank b: A..Z then AA, AB...
func BankName(b int) string {
	if b < 26 {
		return string(rune('A' + b))
	}
	return "A" + string(rune('A'+b-26))
}

// PinName returns the data sheet name of pin n, e.g. "A3" or "AB7".
func PinName(n int) string {
	return fmt.Sprint(BankName(n/PinsPerBank), Index(n))
}

// ParsePin returns the index of a pin given as a decimal index or data sheet
// name; names may have a "GPIO" prefix and are case insensitive.
func ParsePin(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%s: invalid pin", s)
		}
		return n, nil
	}
	name := strings.TrimPrefix(strings.ToUpper(s), "GPIO")
	i := 0
	for i < len(name) && name[i] >= 'A' && name[i] <= 'Z' {
		i++
	}
	var bank int
	switch i {
	case 1:
		bank = int(name[0] - 'A')
	case 2:
		if name[0] != 'A' {
			return 0, fmt.Errorf("%s: invalid bank", s)
		}
		bank = 26 + int(name[1]-'A')
	default:
		return 0, fmt.Errorf("%s: invalid bank", s)
	}
	if len(name) != i+1 || name[i] < '0' || name[i] > '7' {
		return 0, fmt.Errorf("%s: invalid bank index", s)
	}
	return bank*PinsPerBank + int(name[i]-'0'), nil
}
