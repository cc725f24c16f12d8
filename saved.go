package bignum

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Saved is a BigNum together with the precision it was created at, so it can
// be stored and later restored into a Context of any precision.
type Saved struct {
	IntLength int
	Digits    []byte
}

// Save copies n into a Saved value.
func (c *Context) Save(n BigNum) Saved {
	d := make([]byte, c.bnLength)
	copy(d, n)
	return Saved{IntLength: c.intLength, Digits: d}
}

// Restore sets r to s, converting it to the precision of c if needed.
func (c *Context) Restore(r BigNum, s Saved) error {
	if err := s.validate(); err != nil {
		return err
	}
	if s.IntLength == c.intLength && len(s.Digits) == c.bnLength {
		copy(r[:c.bnLength], s.Digits)
		return nil
	}
	from := &Context{intLength: s.IntLength, bnLength: len(s.Digits)}
	c.Convert(r, from, s.Digits)
	return nil
}

func (s Saved) validate() error {
	if !validIntLength(s.IntLength) {
		return errors.Wrapf(ErrSaved, "int length %d", s.IntLength)
	}
	if len(s.Digits) <= s.IntLength {
		return errors.Wrapf(ErrSaved, "%d bytes for int length %d", len(s.Digits), s.IntLength)
	}
	return nil
}

const savedHeaderLen = 5

// MarshalBinary encodes s as one byte of int length, the number of digit
// bytes as a little endian uint32, then the digits.
func (s Saved) MarshalBinary() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	out := make([]byte, savedHeaderLen+len(s.Digits))
	out[0] = byte(s.IntLength)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(s.Digits)))
	copy(out[savedHeaderLen:], s.Digits)
	return out, nil
}

func (s *Saved) UnmarshalBinary(data []byte) error {
	if len(data) < savedHeaderLen {
		return errors.Wrap(ErrSaved, "short header")
	}
	n := binary.LittleEndian.Uint32(data[1:])
	if uint64(len(data)-savedHeaderLen) != uint64(n) {
		return errors.Wrapf(ErrSaved, "expected %d digit bytes, found %d", n, len(data)-savedHeaderLen)
	}
	v := Saved{IntLength: int(data[0]), Digits: append([]byte(nil), data[savedHeaderLen:]...)}
	if err := v.validate(); err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText encodes s as "<int length>:<hex digits>".
func (s Saved) MarshalText() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	out := strconv.AppendInt(nil, int64(s.IntLength), 10)
	out = append(out, ':')
	return append(out, hex.EncodeToString(s.Digits)...), nil
}

func (s *Saved) UnmarshalText(text []byte) error {
	il, digits, ok := strings.Cut(string(text), ":")
	if !ok {
		return errors.Wrapf(ErrSaved, "missing ':' in %q", text)
	}
	n, err := strconv.Atoi(il)
	if err != nil {
		return errors.Wrapf(ErrSaved, "int length %q", il)
	}
	d, err := hex.DecodeString(digits)
	if err != nil {
		return errors.Wrap(ErrSaved, err.Error())
	}
	v := Saved{IntLength: n, Digits: d}
	if err := v.validate(); err != nil {
		return err
	}
	*s = v
	return nil
}
