package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var recordType = reflect.TypeOf(Record{})

// 임베드한 구조체의 공개 필드를 json 이름으로 순회 (Record 자신은 제외)
func eachField(v any, fn func(name string, f reflect.Value)) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	walkFields(rv, fn)
}

func walkFields(rv reflect.Value, fn func(name string, f reflect.Value)) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && (sf.Type == recordType || sf.Type == reflect.PointerTo(recordType)) {
			continue
		}

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		fv := rv.Field(i)
		if sf.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				walkFields(fv, fn)
				continue
			}
		}

		if name == "" {
			name = sf.Name
		}
		fn(name, fv)
	}
}

func assign(f reflect.Value, value any) error {
	if !f.CanSet() {
		return ErrInvalidAttribute
	}
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(f.Type()) {
		f.Set(v)
		return nil
	}

	// json으로 읽은 float64 -> int 필드 등 숫자 변환 (값 손실 시 거부)
	if isNumeric(v.Kind()) && isNumeric(f.Kind()) {
		conv := v.Convert(f.Type())
		if conv.Convert(v.Type()).Interface() != v.Interface() {
			return fmt.Errorf("%w: %v does not fit %s", ErrInvalidAttribute, value, f.Type())
		}
		f.Set(conv)
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}
	ptr := reflect.New(f.Type())
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}
	f.Set(ptr.Elem())
	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Hydrate 실패 시 되돌리기 위한 추가 속성 + 필드 값 사본
type snapshot struct {
	extra  map[string]any
	fields map[string]reflect.Value
}

func (r *Record) snapshot() snapshot {
	s := snapshot{fields: make(map[string]reflect.Value)}
	if r.extra != nil {
		s.extra = make(map[string]any, len(r.extra))
		for k, v := range r.extra {
			s.extra[k] = v
		}
	}
	eachField(r.self(), func(name string, f reflect.Value) {
		if _, seen := s.fields[name]; seen {
			return
		}
		c := reflect.New(f.Type()).Elem()
		c.Set(f)
		s.fields[name] = c
	})
	return s
}

func (s snapshot) restore(r *Record) {
	r.extra = s.extra
	eachField(r.self(), func(name string, f reflect.Value) {
		if c, ok := s.fields[name]; ok && f.CanSet() {
			f.Set(c)
			delete(s.fields, name)
		}
	})
}
