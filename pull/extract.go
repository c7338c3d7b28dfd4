package pull

import (
	"math"

	"github.com/dbender/streamjson"
)

// NoKeyEnum is the sentinel passed to the extractors below meaning "don't
// check the key", mirroring BNJ_NO_KEY_ENUM semantics from pull.hh. A
// caller that cares about key matching compares against a real key set
// index instead.
const NoKeyEnum = ^uint32(0)

func (c *Cursor) checkKey(wantKeyEnum uint32, v *streamjson.Value) error {
	if wantKeyEnum == NoKeyEnum {
		return nil
	}
	if wantKeyEnum != v.KeyEnum {
		return keyMismatch(wantKeyEnum, v.KeyEnum, c.FileOffset(v))
	}
	return nil
}

// Uint reads the current value as an unsigned integer (§4.5 "unsigned
// integer"): it must be KindNumeric with a zero exponent and no leading
// '-'. wantKeyEnum may be NoKeyEnum to skip key matching.
func (c *Cursor) Uint(wantKeyEnum uint32) (uint64, error) {
	v := c.Value()
	if err := c.checkKey(wantKeyEnum, v); err != nil {
		return 0, err
	}
	if v.Kind != streamjson.KindNumeric {
		return 0, typeMismatch(streamjson.KindNumeric, v.Kind, c.FileOffset(v))
	}
	if v.ExpVal != 0 {
		return 0, &InputError{Err: ErrNotIntegral, Offset: c.FileOffset(v)}
	}
	if v.Flags&streamjson.FlagNegativeSignificand != 0 {
		return 0, &InputError{Err: ErrOutOfRange, Offset: c.FileOffset(v)}
	}
	return v.SignificandVal, nil
}

// Int reads the current value as a signed integer (§4.5 "signed
// integer"): KindNumeric, zero exponent, and a significand that fits
// int64 once the sign is applied.
func (c *Cursor) Int(wantKeyEnum uint32) (int64, error) {
	v := c.Value()
	if err := c.checkKey(wantKeyEnum, v); err != nil {
		return 0, err
	}
	if v.Kind != streamjson.KindNumeric {
		return 0, typeMismatch(streamjson.KindNumeric, v.Kind, c.FileOffset(v))
	}
	if v.ExpVal != 0 {
		return 0, &InputError{Err: ErrNotIntegral, Offset: c.FileOffset(v)}
	}
	neg := v.Flags&streamjson.FlagNegativeSignificand != 0
	if neg {
		if v.SignificandVal > uint64(math.MaxInt64)+1 {
			return 0, &InputError{Err: ErrOutOfRange, Offset: c.FileOffset(v)}
		}
		return -int64(v.SignificandVal), nil
	}
	if v.SignificandVal > math.MaxInt64 {
		return 0, &InputError{Err: ErrOutOfRange, Offset: c.FileOffset(v)}
	}
	return int64(v.SignificandVal), nil
}

// Float reads the current value as a float64 (§4.5 "float/double"):
// KindNumeric (value = ±significand * 10^exp_val) or KindSpecial NaN /
// ±Infinity.
func (c *Cursor) Float(wantKeyEnum uint32) (float64, error) {
	v := c.Value()
	if err := c.checkKey(wantKeyEnum, v); err != nil {
		return 0, err
	}
	switch v.Kind {
	case streamjson.KindNumeric:
		f := float64(v.SignificandVal) * math.Pow(10, float64(v.ExpVal))
		if v.Flags&streamjson.FlagNegativeSignificand != 0 {
			f = -f
		}
		return f, nil
	case streamjson.KindSpecial:
		switch streamjson.Special(v.SignificandVal) {
		case streamjson.SpecialNaN:
			return math.NaN(), nil
		case streamjson.SpecialInfinity:
			if v.Flags&streamjson.FlagNegativeSignificand != 0 {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		}
	}
	return 0, typeMismatch(streamjson.KindNumeric, v.Kind, c.FileOffset(v))
}

// Bool reads the current value as a boolean (§4.5 "bool"): KindSpecial
// with significand False or True.
func (c *Cursor) Bool(wantKeyEnum uint32) (bool, error) {
	v := c.Value()
	if err := c.checkKey(wantKeyEnum, v); err != nil {
		return false, err
	}
	if v.Kind != streamjson.KindSpecial {
		return false, typeMismatch(streamjson.KindSpecial, v.Kind, c.FileOffset(v))
	}
	switch streamjson.Special(v.SignificandVal) {
	case streamjson.SpecialFalse:
		return false, nil
	case streamjson.SpecialTrue:
		return true, nil
	}
	return false, typeMismatch(streamjson.KindSpecial, v.Kind, c.FileOffset(v))
}

// VerifyNull checks that the current value is JSON null (§4.5
// "null-verify").
func (c *Cursor) VerifyNull(wantKeyEnum uint32) error {
	v := c.Value()
	if err := c.checkKey(wantKeyEnum, v); err != nil {
		return err
	}
	if v.Kind != streamjson.KindSpecial || streamjson.Special(v.SignificandVal) != streamjson.SpecialNull {
		return typeMismatch(streamjson.KindSpecial, v.Kind, c.FileOffset(v))
	}
	return nil
}

// VerifyList checks that the cursor is currently positioned on a List
// descent (§4.5 "list/map-verify").
func (c *Cursor) VerifyList() error {
	if c.state != StateList {
		return &InputError{Err: ErrTypeMismatch, Offset: c.bufferBase + uint64(c.firstUnparsed)}
	}
	return nil
}

// VerifyMap checks that the cursor is currently positioned on a Map
// descent (§4.5 "list/map-verify").
func (c *Cursor) VerifyMap() error {
	if c.state != StateMap {
		return &InputError{Err: ErrTypeMismatch, Offset: c.bufferBase + uint64(c.firstUnparsed)}
	}
	return nil
}
