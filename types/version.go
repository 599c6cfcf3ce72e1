package types

import (
	"fmt"
	"strconv"
)

// Version is a JNI interface version: major in the high 16 bits, minor in the low 16.
type Version Jint

const (
	Version1_1 Version = 0x00010001
	Version1_2 Version = 0x00010002
	Version1_4 Version = 0x00010004
	Version1_6 Version = 0x00010006
	Version1_8 Version = 0x00010008
	Version9   Version = 0x00090000
	Version10  Version = 0x000a0000
	Version19  Version = 0x00130000
	Version20  Version = 0x00140000
	Version21  Version = 0x00150000
)

// Known lists every version constant in ascending order.
var Known = []Version{
	Version1_1, Version1_2, Version1_4, Version1_6, Version1_8,
	Version9, Version10, Version19, Version20, Version21,
}

// Major returns the major component.
func (v Version) Major() int { return int(uint32(v) >> 16) }

// Minor returns the minor component.
func (v Version) Minor() int { return int(uint32(v) & 0xffff) }

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool { return uint32(v) >= uint32(other) }

// String renders "1.8" style for 1.x versions and "9" style afterwards.
func (v Version) String() string {
	if v.Minor() == 0 {
		return strconv.Itoa(v.Major())
	}
	return strconv.Itoa(v.Major()) + "." + strconv.Itoa(v.Minor())
}

// ParseVersion parses a version as rendered by String, such as "1.8" or "21".
func ParseVersion(s string) (Version, error) {
	for _, v := range Known {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown JNI version %q", s)
}
