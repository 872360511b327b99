package models

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

const (
	// 내보내기(map)에 들어가는 타입 태그 키
	ClassKey = "__class__"

	// 타임존 변환 없는 로컬 시각, 마이크로초 단위
	TimeFormat = "2006-01-02T15:04:05.000000"

	keyID        = "id"
	keyCreatedAt = "created_at"
	keyUpdatedAt = "updated_at"
)

var (
	ErrReservedAttribute = errors.New("attribute is reserved")
	ErrInvalidAttribute  = errors.New("invalid attribute value")
)

// 테스트에서 시계를 고정하기 위해 교체
var now = time.Now

// Record를 임베드한 모든 구조체가 만족하는 인터페이스
type Model interface {
	Base() *Record
}

// Record 모델: 모든 엔티티의 식별자/타임스탬프 기반
// 임베드한 뒤 Init을 호출해야 하며, Init 이후에는 값 복사 금지
type Record struct {
	ID        string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	class string
	owner Model
	extra map[string]any
}

func NewRecord() *Record {
	r := &Record{}
	Init(r)
	return r
}

// 새 UUID 발급, created_at = updated_at = 현재 시각
// *Record를 임베드했고 nil이면 새로 할당
func Init(m Model) {
	r := m.Base()
	if r == nil {
		r = allocRecord(m)
	}
	t := now().Round(0)
	r.ID = uuid.NewString()
	r.CreatedAt = t
	r.UpdatedAt = t
	r.class = classOf(m)
	r.owner = m
	r.extra = make(map[string]any)
}

func (r *Record) Base() *Record { return r }

func (r *Record) ClassName() string {
	if r.class == "" {
		return "Record"
	}
	return r.class
}

// 수정 시각 갱신 (시계가 뒤로 가도 updated_at은 줄어들지 않음)
// monotonic 값을 버리고 벽시계 기준으로 비교
func (r *Record) Save() {
	t := now().Round(0)
	if t.Before(r.UpdatedAt) {
		return
	}
	r.UpdatedAt = t
}

// 기본 필드 + 임베드한 구조체의 필드 + 추가 속성 전체
func (r *Record) Attributes() map[string]any {
	attrs := make(map[string]any, len(r.extra)+3)
	for k, v := range r.extra {
		attrs[k] = v
	}
	eachField(r.self(), func(name string, f reflect.Value) {
		attrs[name] = f.Interface()
	})
	attrs[keyID] = r.ID
	attrs[keyCreatedAt] = r.CreatedAt
	attrs[keyUpdatedAt] = r.UpdatedAt
	return attrs
}

func (r *Record) String() string {
	return fmt.Sprintf("[%s] (%s) %v", r.ClassName(), r.ID, r.Attributes())
}

// ToDict: 속성의 얕은 복사본에 __class__ 태그를 붙여 반환
// 타임스탬프는 변환 없이 TimeFormat 문자열로
func (r *Record) ToDict() map[string]any {
	d := r.Attributes()
	d[ClassKey] = r.ClassName()
	d[keyCreatedAt] = r.CreatedAt.Format(TimeFormat)
	d[keyUpdatedAt] = r.UpdatedAt.Format(TimeFormat)
	return d
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.Attributes()[key]
	return v, ok
}

// 같은 이름의 필드가 있으면 그 필드에 대입, 없으면 추가 속성으로 저장
func (r *Record) Set(key string, value any) error {
	switch key {
	case keyID, keyCreatedAt, keyUpdatedAt, ClassKey:
		return fmt.Errorf("Set(%q): %w", key, ErrReservedAttribute)
	}

	var assigned bool
	var err error
	eachField(r.self(), func(name string, f reflect.Value) {
		if assigned || name != key {
			return
		}
		assigned = true
		err = assign(f, value)
	})
	if assigned {
		if err != nil {
			return fmt.Errorf("Set(%q): %w", key, err)
		}
		return nil
	}

	if r.extra == nil {
		r.extra = make(map[string]any)
	}
	r.extra[key] = value
	return nil
}

func (r *Record) self() any {
	if r.owner == nil {
		return r
	}
	return r.owner
}

func allocRecord(m Model) *Record {
	rv := reflect.ValueOf(m)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		rv = rv.Elem()
		ptrType := reflect.PointerTo(recordType)
		for i := 0; i < rv.NumField(); i++ {
			sf := rv.Type().Field(i)
			if sf.Anonymous && sf.Type == ptrType && rv.Field(i).CanSet() {
				rv.Field(i).Set(reflect.New(recordType))
				return m.Base()
			}
		}
	}
	panic(fmt.Sprintf("models.Init(): %T has no settable *Record", m))
}

func classOf(m Model) string {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
