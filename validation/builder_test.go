// Copyright (C) 2026 The Chime Authors
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCollector_NoErrors(t *testing.T) {
	v := NewCollector()

	v.Check(nil)
	v.Check(nil)
	v.CheckMsg(nil, "some message")

	assert.NoError(t, v.Error())
}

func TestErrorCollector_SingleError(t *testing.T) {
	v := NewCollector()

	v.Check(fmt.Errorf("test error"))

	err := v.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test error")
}

func TestErrorCollector_MultipleErrors(t *testing.T) {
	v := NewCollector()

	v.Check(fmt.Errorf("first error"))
	v.Check(fmt.Errorf("second error"))
	v.Check(fmt.Errorf("third error"))

	err := v.Error()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "first error")
	assert.Contains(t, err.Error(), "second error")
	assert.Contains(t, err.Error(), "third error")
}

func TestErrorCollector_WithContext(t *testing.T) {
	v := NewCollector().WithContext("widget hassio")

	v.Check(fmt.Errorf("invalid base URL"))
	v.Check(fmt.Errorf("invalid cache TTL"))

	err := v.Error()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "widget hassio: invalid base URL")
	assert.Contains(t, err.Error(), "widget hassio: invalid cache TTL")
}

func TestErrorCollector_CheckMsg_WithContext(t *testing.T) {
	v := NewCollector().WithContext("buds config")

	v.CheckMsg(fmt.Errorf("invalid hex color #zzz"), "invalid start color")
	v.CheckMsg(fmt.Errorf("interval 0 must be at least 1 second"), "invalid interval")

	err := v.Error()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "buds config: invalid start color: invalid hex color #zzz")
	assert.Contains(t, err.Error(), "buds config: invalid interval: interval 0 must be at least 1 second")
}

func TestErrorCollector_NestedValidation(t *testing.T) {
	// Child validators carry their own context prefix
	validateBuds := func() error {
		v := NewCollector().WithContext("buds config")
		v.Check(fmt.Errorf("drift threshold 0 must be at least 1"))
		return v.Error()
	}

	validateWidget := func() error {
		v := NewCollector().WithContext("widget mqttbridge")
		v.Check(fmt.Errorf("broker URL cannot be empty"))
		v.Check(fmt.Errorf("topic cannot be empty"))
		return v.Error()
	}

	parent := func() error {
		v := NewCollector()
		v.Check(validateBuds())
		v.Check(validateWidget())
		return v.Error()
	}

	err := parent()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "buds config: drift threshold 0 must be at least 1")
	assert.Contains(t, errStr, "widget mqttbridge: broker URL cannot be empty")
	assert.Contains(t, errStr, "widget mqttbridge: topic cannot be empty")
}

func TestErrorCollector_ErrorFormat(t *testing.T) {
	v := NewCollector()

	v.Check(fmt.Errorf("error 1"))
	v.Check(fmt.Errorf("error 2"))
	v.Check(fmt.Errorf("error 3"))

	err := v.Error()
	require.Error(t, err)

	// errors.Join separates errors with newlines
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "error 1")
	assert.Contains(t, lines[1], "error 2")
	assert.Contains(t, lines[2], "error 3")
}

func TestErrorCollector_ErrorUnwrap(t *testing.T) {
	v := NewCollector()

	originalErr := fmt.Errorf("original error")
	v.Check(originalErr)

	err := v.Error()
	require.Error(t, err)

	assert.True(t, errors.Is(err, originalErr))
}
