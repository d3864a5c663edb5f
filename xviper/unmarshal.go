// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Unmarshaler is the viper behavior for decoding the whole configuration
type Unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// KeyUnmarshaler is the viper behavior for decoding a single key
type KeyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// DecodeHook accepts durations as strings and lists as comma separated strings,
// in addition to their native forms.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// Unmarshal decodes everything in u into v using DecodeHook.
func Unmarshal(u Unmarshaler, v interface{}) error {
	return u.Unmarshal(v, DecodeHook())
}

// UnmarshalKey decodes a single key of u into v using DecodeHook.  A missing key leaves v untouched.
func UnmarshalKey(u KeyUnmarshaler, key string, v interface{}) error {
	return u.UnmarshalKey(key, v, DecodeHook())
}

type getter interface {
	Get(string) interface{}
}

func isListSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Durations reads a list of durations, given either as a list or as a string separated by commas
// and/or whitespace.  Bare numbers are nanoseconds.
func Durations(g getter, key string) ([]time.Duration, error) {
	raw := g.Get(key)
	if s, ok := raw.(string); ok {
		raw = strings.FieldsFunc(s, isListSeparator)
	}

	d, err := cast.ToDurationSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return d, nil
}

type defaulter interface {
	SetDefault(string, interface{})
}

type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}
