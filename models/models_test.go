package models

import (
	"reflect"
	"strings"
	"testing"
)

// CreatedAt is assigned by the write path and stays nil while a timestamp is
// pending, so neither model may let GORM manage the field itself.
func TestCreatedAtStaysCallerOwned(t *testing.T) {
	for _, typ := range []reflect.Type{reflect.TypeOf(Post{}), reflect.TypeOf(Reply{})} {
		f, ok := typ.FieldByName("CreatedAt")
		if !ok {
			t.Fatalf("%s has no CreatedAt field", typ.Name())
		}
		if f.Type.Kind() != reflect.Ptr {
			t.Errorf("%s.CreatedAt is %s, want a pointer for the pending state", typ.Name(), f.Type)
		}
		if !strings.Contains(f.Tag.Get("gorm"), "autoCreateTime:false") {
			t.Errorf("%s.CreatedAt gorm tag %q lets the ORM assign the timestamp", typ.Name(), f.Tag.Get("gorm"))
		}
	}
}
