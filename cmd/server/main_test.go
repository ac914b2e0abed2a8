package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseStorages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{name: "clean close", err: nil, wantLog: false},
		{name: "close error is logged", err: errors.New("database is locked"), wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := &logger.Logger{Logger: zerolog.New(&buf)}

			closed := false
			closeStorages(closerFunc(func() error {
				closed = true
				return tt.err
			}), log)

			assert.True(t, closed)
			if tt.wantLog {
				assert.Contains(t, buf.String(), "error closing storages")
				assert.Contains(t, buf.String(), "database is locked")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
