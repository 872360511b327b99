package models

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: FromDict(ToDict(r)).ToDict() == ToDict(r)
func TestToDictRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("export survives re-hydration", prop.ForAll(
		func(keys []string, values []string, saves uint8) bool {
			r := NewRecord()
			for i := 0; i < len(keys) && i < len(values); i++ {
				if err := r.Set(keys[i], values[i]); err != nil {
					return true // reserved key
				}
			}
			for i := uint8(0); i < saves%4; i++ {
				r.Save()
			}

			d := r.ToDict()
			m, err := FromDict(d)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(d, m.Base().ToDict())
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
		gen.UInt8(),
	))

	properties.Property("updated_at never precedes created_at", prop.ForAll(
		func(saves uint8) bool {
			r := NewRecord()
			for i := uint8(0); i < saves; i++ {
				r.Save()
				if r.UpdatedAt.Before(r.CreatedAt) {
					return false
				}
			}
			return r.ToDict()[ClassKey] == "Record"
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
