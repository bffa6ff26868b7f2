// This file is part of tcusim.
//
// tcusim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tcusim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tcusim.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/OpenNoah/qemu-sub000/curated"
)

// Value represents the actual Go preference value.
type Value interface{}

// types support by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// scalar is the storage shared by the single value preference types. the
// zero value of T is returned before the first Set().
type scalar[T any] struct {
	value atomic.Value

	hookPre  func(value Value) error
	hookPost func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. An error from the callback stops the update.
func (s *scalar[T]) SetHookPre(f func(value Value) error) {
	s.hookPre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. The callback is called even if the value is unchanged.
func (s *scalar[T]) SetHookPost(f func(value Value) error) {
	s.hookPost = f
}

func (s *scalar[T]) load() T {
	if v, ok := s.value.Load().(T); ok {
		return v
	}
	var z T
	return z
}

func (s *scalar[T]) store(nv T) error {
	if s.hookPre != nil {
		if err := s.hookPre(nv); err != nil {
			return err
		}
	}
	s.value.Store(nv)
	if s.hookPost != nil {
		return s.hookPost(nv)
	}
	return nil
}

func conversionError(v Value, to string, err error) error {
	if err != nil {
		return curated.Errorf("prefs: cannot convert %T to prefs.%s: %v", v, to, err)
	}
	return curated.Errorf("prefs: cannot convert %T to prefs.%s", v, to)
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	scalar[bool]
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return p.store(v)
	case string:
		return p.store(strings.EqualFold(strings.TrimSpace(v), "true"))
	}
	return conversionError(v, "Bool", nil)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.load()
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system.
type String struct {
	scalar[string]
	maxLen int
}

func (p *String) String() string {
	return p.load()
}

func (p *String) crop(s string) string {
	if p.maxLen > 0 && len(s) > p.maxLen {
		return s[:p.maxLen]
	}
	return s
}

// SetMaxLen sets the maximum length of the string. A value less than or
// equal to zero means no limit. The current value is cropped without calling
// the hooks.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max
	if s, ok := p.value.Load().(string); ok {
		p.value.Store(p.crop(s))
	}
}

// Set new value to String type. Values of other types are converted with
// the %v verb.
func (p *String) Set(v Value) error {
	return p.store(p.crop(fmt.Sprintf("%v", v)))
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.load()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Int implements an integer type in the prefs system. Strings are parsed
// with Go literal syntax so clock rates can be written as 12_000_000 or in
// hex.
type Int struct {
	scalar[int]
}

func (p *Int) String() string {
	return strconv.Itoa(p.load())
}

// Set new value to Int type. New value can be any integer type or a string.
func (p *Int) Set(v Value) error {
	switch v := v.(type) {
	case int:
		return p.store(v)
	case int32:
		return p.store(int(v))
	case int64:
		return p.store(int(v))
	case uint32:
		return p.store(int(v))
	case uint64:
		return p.store(int(v))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return conversionError(v, "Int", err)
		}
		return p.store(int(n))
	}
	return conversionError(v, "Int", nil)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return p.load()
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// Duration implements a time.Duration type in the prefs system. Strings are
// parsed with time.ParseDuration().
type Duration struct {
	scalar[time.Duration]
}

func (p *Duration) String() string {
	return p.load().String()
}

// Set new value to Duration type. New value can be a time.Duration, an int
// (nanoseconds) or a string.
func (p *Duration) Set(v Value) error {
	switch v := v.(type) {
	case time.Duration:
		return p.store(v)
	case int:
		return p.store(time.Duration(v))
	case int64:
		return p.store(time.Duration(v))
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return conversionError(v, "Duration", err)
		}
		return p.store(d)
	}
	return conversionError(v, "Duration", nil)
}

// Get returns the raw pref value.
func (p *Duration) Get() Value {
	return p.load()
}

// Reset sets the duration to zero.
func (p *Duration) Reset() error {
	return p.Set(time.Duration(0))
}
