/* config.go
 * Contains the immutable configuration used by the Encoder: which digit each region is keyed by, and which round each
 * bracket id round code refers to.
 */

package bracket

import (
	"fmt"
	"strings"
)

// Config maps regions to their key digit and bracket id round codes to rounds. The zero value is not usable, build
// one with NewConfig or DefaultConfig. Config is safe to share, its maps are never handed out.
type Config struct {
	regions    map[string]byte
	roundCodes map[byte]Round
}

// DefaultConfig returns the layout used by the NCAA scoreboard feed. Round code 1 is the First Four, which is not part
// of the 63 game bracket and is left unmapped.
func DefaultConfig() Config {
	cfg, err := NewConfig(
		map[string]byte{"WEST": '1', "SOUTH": '2', "EAST": '3', "MIDWEST": '4'},
		map[byte]Round{'2': RoundOf64, '3': RoundOf32, '4': SweetSixteen, '5': EliteEight, '6': FinalFour, '7': Championship},
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewConfig validates and copies a region and round code layout
// Preconditions: Receives a map of exactly four region names to distinct digits '1'-'4', and a map of round codes
// covering each of the six rounds exactly once
// Postconditions: Returns a Config, or an error describing the first invalid entry
func NewConfig(regions map[string]byte, roundCodes map[byte]Round) (Config, error) {
	if len(regions) != 4 {
		return Config{}, fmt.Errorf("expected 4 regions but got %d", len(regions))
	}
	cfg := Config{
		regions:    make(map[string]byte, len(regions)),
		roundCodes: make(map[byte]Round, len(roundCodes)),
	}

	usedDigits := make(map[byte]string)
	for region, digit := range regions {
		name := normaliseRegion(region)
		if name == "" {
			return Config{}, fmt.Errorf("region name cannot be empty")
		}
		if digit < '1' || digit > '4' {
			return Config{}, fmt.Errorf("region %s has digit %q, expected '1'-'4'", name, digit)
		}
		if other, used := usedDigits[digit]; used {
			return Config{}, fmt.Errorf("regions %s and %s share digit %q", other, name, digit)
		}
		if _, dup := cfg.regions[name]; dup {
			return Config{}, fmt.Errorf("region %s is listed twice", name)
		}
		usedDigits[digit] = name
		cfg.regions[name] = digit
	}

	seen := make(map[Round]byte)
	for code, r := range roundCodes {
		if !r.Valid() {
			return Config{}, fmt.Errorf("round code %q maps to invalid round %d", code, int(r))
		}
		if other, dup := seen[r]; dup {
			return Config{}, fmt.Errorf("round codes %q and %q both map to %s", other, code, r)
		}
		seen[r] = code
		cfg.roundCodes[code] = r
	}
	if len(seen) != len(Rounds()) {
		return Config{}, fmt.Errorf("round codes cover %d of %d rounds", len(seen), len(Rounds()))
	}
	return cfg, nil
}

// RegionDigit returns the key digit for a region name (case insensitive)
func (c Config) RegionDigit(region string) (byte, bool) {
	digit, ok := c.regions[normaliseRegion(region)]
	return digit, ok
}

// RoundForCode returns the round a bracket id round code refers to
func (c Config) RoundForCode(code byte) (Round, bool) {
	r, ok := c.roundCodes[code]
	return r, ok
}

// Regions returns the configured region names in digit order
func (c Config) Regions() []string {
	names := make([]string, 4)
	for name, digit := range c.regions {
		names[digit-'1'] = name
	}
	return names
}

func normaliseRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}
