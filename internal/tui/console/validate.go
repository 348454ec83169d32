package console

import (
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

var resourceNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]{1,61}[a-z0-9]$`)

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// validName accepts 3-63 lowercase letters, digits and hyphens, starting
// with a letter.
func validName(s string) error {
	if err := required(s); err != nil {
		return err
	}
	if !resourceNameRe.MatchString(s) {
		return errors.New("use 3-63 lowercase letters, digits or hyphens, starting with a letter")
	}
	return nil
}

func validCIDR(s string) error {
	if err := required(s); err != nil {
		return err
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return errors.New("not a CIDR block, e.g. 10.0.1.0/24")
	}
	if !p.Addr().Is4() {
		return errors.New("only IPv4 blocks are supported")
	}
	if p.Masked() != p {
		return fmt.Errorf("host bits set, did you mean %s?", p.Masked())
	}
	if p.Bits() < 16 || p.Bits() > 28 {
		return errors.New("prefix length must be between /16 and /28")
	}
	return nil
}

// validPrefix accepts any IPv4 or IPv6 CIDR, used for rule sources.
func validPrefix(s string) error {
	if err := required(s); err != nil {
		return err
	}
	if _, err := netip.ParsePrefix(s); err != nil {
		return errors.New("not a CIDR block, e.g. 0.0.0.0/0")
	}
	return nil
}

func validIP(s string) error {
	if s == "" {
		return nil
	}
	if _, err := netip.ParseAddr(s); err != nil {
		return errors.New("not an IP address")
	}
	return nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("must be a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// validPortRange accepts "All", a single port or "from-to".
func validPortRange(s string) error {
	if err := required(s); err != nil {
		return err
	}
	if strings.EqualFold(s, "all") {
		return nil
	}
	from, to, isRange := strings.Cut(s, "-")
	port := intBetween(1, 65535)
	if err := port(from); err != nil {
		return fmt.Errorf("port %w", err)
	}
	if !isRange {
		return nil
	}
	if err := port(to); err != nil {
		return fmt.Errorf("port %w", err)
	}
	a, _ := strconv.Atoi(from)
	b, _ := strconv.Atoi(to)
	if a > b {
		return errors.New("range start is after its end")
	}
	return nil
}
