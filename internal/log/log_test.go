// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &Standard{Out: &buf, Level: LevelWarn, NoColor: true}

	l.Debugf("debug %s", "line")
	l.Infof("info %s", "line")
	assert.Empty(t, buf.String())

	l.Warnf("warn %s", "line")
	assert.Contains(t, buf.String(), "[warn] warn line")
}

func TestStandardNoColorOmitsEscapeCodes(t *testing.T) {
	var buf bytes.Buffer
	l := &Standard{Out: &buf, Level: LevelDebug, NoColor: true}

	l.Errorf("boom %d", 42)
	assert.Equal(t, "[error] boom 42\n", buf.String())
}

func TestNopDiscardsEverything(t *testing.T) {
	var n Nop
	n.Debugf("x")
	n.Infof("x")
	n.Warnf("x")
	n.Errorf("x")
}
