package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ken-eddy/salesApp/checkout"
)

func TestClassify(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		conflict bool
		dup      bool
	}{
		{"pq serialization", &pq.Error{Code: "40001"}, true, false},
		{"pq deadlock", &pq.Error{Code: "40P01"}, true, false},
		{"pq unique", &pq.Error{Code: "23505"}, false, true},
		{"pq other", &pq.Error{Code: "42P01"}, false, false},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, true, false},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, true, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, false, true},
		{"wrapped", fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}), true, false},
		{"plain", plain, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.conflict, errors.Is(got, checkout.ErrVersionConflict))
			assert.Equal(t, tt.dup, errors.Is(got, ErrDuplicate))
		})
	}

	assert.NoError(t, classify(nil))
	assert.Same(t, plain, classify(plain))
}
