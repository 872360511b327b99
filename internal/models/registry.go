package models

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrUnknownClass = errors.New("unknown class")

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Model{
		"Record": func() Model { return NewRecord() },
	}
)

// factory가 반환하는 값의 타입 이름으로 등록 (__class__ 값과 매칭)
func Register(factory func() Model) {
	name := classOf(factory())

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// ToDict 결과로부터 레코드 복원
func FromDict(d map[string]any) (Model, error) {
	name, _ := d[ClassKey].(string)

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("FromDict(): %q: %w", name, ErrUnknownClass)
	}

	m := factory()
	if err := Hydrate(m, d); err != nil {
		return nil, err
	}
	return m, nil
}

// d의 값을 m에 다시 대입, d에 없는 키는 기존 값 유지
// 실패하면 m은 호출 전 상태 그대로
func Hydrate(m Model, d map[string]any) error {
	r := m.Base()
	if r == nil || r.owner == nil {
		Init(m)
		r = m.Base()
	}

	id, createdAt, updatedAt := r.ID, r.CreatedAt, r.UpdatedAt
	if v, ok := d[keyID]; ok {
		s, isString := v.(string)
		if !isString || s == "" {
			return fmt.Errorf("Hydrate(): id %v: %w", v, ErrInvalidAttribute)
		}
		id = s
	}
	var err error
	if v, ok := d[keyCreatedAt]; ok {
		if createdAt, err = parseTime(v); err != nil {
			return fmt.Errorf("Hydrate(): created_at: %w", err)
		}
	}
	if v, ok := d[keyUpdatedAt]; ok {
		if updatedAt, err = parseTime(v); err != nil {
			return fmt.Errorf("Hydrate(): updated_at: %w", err)
		}
	}
	if updatedAt.Before(createdAt) {
		return fmt.Errorf("Hydrate(): updated_at before created_at: %w", ErrInvalidAttribute)
	}

	snap := r.snapshot()
	for k, v := range d {
		switch k {
		case keyID, keyCreatedAt, keyUpdatedAt, ClassKey:
			continue
		}
		if err := r.Set(k, v); err != nil {
			snap.restore(r)
			return fmt.Errorf("Hydrate(): %w", err)
		}
	}

	r.ID, r.CreatedAt, r.UpdatedAt = id, createdAt, updatedAt
	return nil
}

// 소수점 이하 초는 있어도 없어도 허용, 로컬 시각으로 해석
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.ParseInLocation("2006-01-02T15:04:05", t, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("%w: %T is not a timestamp", ErrInvalidAttribute, v)
}
