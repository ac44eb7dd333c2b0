package ocpcrypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// hexToBytes parses the "0x"-prefixed hex a command-line flag or log
// line would carry, used by G1FromHex/G2FromHex below.
func hexToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("hex: empty string")
	}
	ss := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(ss)%2 != 0 {
		return nil, fmt.Errorf("hex: odd length")
	}
	b, err := hex.DecodeString(ss)
	if err != nil {
		return nil, fmt.Errorf("hex: %w", err)
	}
	return b, nil
}

func bytesToHex(b []byte) string {
	return "0x" + strings.ToLower(hex.EncodeToString(b))
}

// String renders the compressed point as "0x"-prefixed hex.
func (p G1Point) String() string {
	return bytesToHex(p.Bytes())
}

func (p G2Point) String() string {
	return bytesToHex(p.Bytes())
}

// G1FromHex parses a "0x"-prefixed compressed G1 point, the inverse of
// G1Point.String.
func G1FromHex(s string) (G1Point, error) {
	b, err := hexToBytes(s)
	if err != nil {
		return G1Point{}, fmt.Errorf("ocpcrypto: g1 from hex: %w", err)
	}
	return G1FromBytesCompressed(b)
}

// G2FromHex parses a "0x"-prefixed compressed G2 point.
func G2FromHex(s string) (G2Point, error) {
	b, err := hexToBytes(s)
	if err != nil {
		return G2Point{}, fmt.Errorf("ocpcrypto: g2 from hex: %w", err)
	}
	return G2FromBytesCompressed(b)
}

