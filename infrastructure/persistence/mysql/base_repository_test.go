package mysql

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"driver 1062", &mysqlDriver.MySQLError{Number: 1062}, true},
		{"wrapped driver 1062", fmt.Errorf("save: %w", &mysqlDriver.MySQLError{Number: 1062}), true},
		{"driver deadlock 1213", &mysqlDriver.MySQLError{Number: 1213}, false},
		{"message text only", errors.New("Duplicate entry 'x' for key 'email'"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKeyError(tt.err))
		})
	}
}
