package dbtypes

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is stored as text[] on Postgres and as a Postgres array literal
// in a text column elsewhere, so SQLite-backed tests share the same encoding.
type StringList []string

func (StringList) GormDataType() string {
	return "string_list"
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "{}", nil
	}
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("StringList: %w", err)
	}
	*l = StringList(arr)
	return nil
}

// Contains reports whether v is present.
func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if item == v {
			return true
		}
	}
	return false
}
