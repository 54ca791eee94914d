// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upCalled   bool
	downCalled bool
	upErr      error
	downErr    error
}

func (m *fakeMigrator) Up() error {
	m.upCalled = true
	return m.upErr
}

func (m *fakeMigrator) Down() error {
	m.downCalled = true
	return m.downErr
}

func (m *fakeMigrator) Close() error { return nil }

func TestRunMigrateUpLogic_Success(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{}

	err := runMigrateUpLogic(&buf, m)

	require.NoError(t, err)
	assert.True(t, m.upCalled)
	assert.Contains(t, buf.String(), "migrations completed successfully")
}

func TestRunMigrateUpLogic_PropagatesError(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{upErr: errors.New("boom")}

	err := runMigrateUpLogic(&buf, m)

	require.Error(t, err)
	assert.True(t, m.upCalled)
	assert.NotContains(t, buf.String(), "completed successfully")
}

func TestRunMigrateDownLogic_Success(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{}

	err := runMigrateDownLogic(&buf, m)

	require.NoError(t, err)
	assert.True(t, m.downCalled)
	assert.Contains(t, buf.String(), "rollback completed successfully")
}

func TestRunMigrateDownLogic_PropagatesError(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{downErr: errors.New("boom")}

	err := runMigrateDownLogic(&buf, m)

	require.Error(t, err)
	assert.True(t, m.downCalled)
}

func TestDialMigrator_MissingDSNReturnsConfigInvalid(t *testing.T) {
	t.Setenv("SEARCHQUERY_STORE_DSN", "")
	cmd := NewMigrateCmd()

	_, err := dialMigrator(cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store DSN is required")
}

func TestNewMigrateCmd_HasUpAndDownSubcommands(t *testing.T) {
	cmd := NewMigrateCmd()
	up, _, err := cmd.Find([]string{"up"})
	require.NoError(t, err)
	assert.Equal(t, "up", up.Name())

	down, _, err := cmd.Find([]string{"down"})
	require.NoError(t, err)
	assert.Equal(t, "down", down.Name())
}
