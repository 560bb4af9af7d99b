package rawview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sdkCoding struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

type sdkAppointment struct {
	ID          string `json:"id"`
	StartTime   string `json:"start_time"`
	Duration    int    `json:"duration_minutes"`
	Coding      []sdkCoding
	Location    *string
	hiddenField string
}

func TestGet(t *testing.T) {
	t.Run("Map Container First Candidate Wins", func(t *testing.T) {
		container := map[string]interface{}{
			"start_time": "2024-01-01T10:00:00Z",
			"startTime":  "ignored",
		}
		v, ok := Get(container, "start_time", "startTime")
		assert.True(t, ok)
		assert.Equal(t, "2024-01-01T10:00:00Z", v)
	})

	t.Run("Map Container Fallback Name", func(t *testing.T) {
		container := map[string]interface{}{"startTime": "2024-01-01T10:00:00Z"}
		v, ok := Get(container, "start_time", "startTime")
		assert.True(t, ok)
		assert.Equal(t, "2024-01-01T10:00:00Z", v)
	})

	t.Run("Nil Value Is Absent", func(t *testing.T) {
		container := map[string]interface{}{"start_time": nil}
		_, ok := Get(container, "start_time")
		assert.False(t, ok)
	})

	t.Run("Missing Field Does Not Raise", func(t *testing.T) {
		_, ok := Get(map[string]interface{}{}, "anything")
		assert.False(t, ok)
	})

	t.Run("Nil Container", func(t *testing.T) {
		_, ok := Get(nil, "anything")
		assert.False(t, ok)
	})

	t.Run("Struct Container By Field Name", func(t *testing.T) {
		appt := sdkAppointment{ID: "appt-1"}
		v, ok := Get(appt, "ID")
		assert.True(t, ok)
		assert.Equal(t, "appt-1", v)
	})

	t.Run("Struct Container By JSON Tag", func(t *testing.T) {
		appt := &sdkAppointment{StartTime: "2024-01-01T10:00:00Z"}
		v, ok := Get(appt, "start_time")
		assert.True(t, ok)
		assert.Equal(t, "2024-01-01T10:00:00Z", v)
	})

	t.Run("Struct Nil Pointer Field Is Absent", func(t *testing.T) {
		_, ok := Get(sdkAppointment{}, "Location")
		assert.False(t, ok)
	})

	t.Run("Unexported Field Is Absent", func(t *testing.T) {
		_, ok := Get(sdkAppointment{hiddenField: "x"}, "hiddenField")
		assert.False(t, ok)
	})
}

func TestPath(t *testing.T) {
	container := map[string]interface{}{
		"appointment_type": map[string]interface{}{
			"coding": []interface{}{
				map[string]interface{}{"code": "TEST-ORH", "display": "TEST-OneRoomHealth"},
			},
		},
	}

	t.Run("Nested With Index", func(t *testing.T) {
		v, ok := Path(container, "appointment_type.coding[0].code")
		assert.True(t, ok)
		assert.Equal(t, "TEST-ORH", v)
	})

	t.Run("Broken Link Returns Absent", func(t *testing.T) {
		_, ok := Path(container, "appointment_type.coding[0].system")
		assert.False(t, ok)
		_, ok = Path(container, "appointment_type.missing[0].code")
		assert.False(t, ok)
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		_, ok := Path(container, "appointment_type.coding[5].code")
		assert.False(t, ok)
	})

	t.Run("Struct Slice Traversal", func(t *testing.T) {
		appt := sdkAppointment{Coding: []sdkCoding{{Code: "c1"}}}
		v, ok := Path(appt, "Coding[0].code")
		assert.True(t, ok)
		assert.Equal(t, "c1", v)
	})
}

func TestString(t *testing.T) {
	t.Run("Nil Never Renders As Text", func(t *testing.T) {
		assert.Equal(t, "", String(nil))
		var p *string
		assert.Equal(t, "", String(p))
	})

	t.Run("Integral JSON Number Keeps Identifier Shape", func(t *testing.T) {
		assert.Equal(t, "82", String(float64(82)))
	})

	t.Run("Fractional Number", func(t *testing.T) {
		assert.Equal(t, "1.5", String(1.5))
	})

	t.Run("Bool", func(t *testing.T) {
		assert.Equal(t, "true", String(true))
	})
}

func TestInt(t *testing.T) {
	t.Run("Numeric Shapes", func(t *testing.T) {
		for _, v := range []interface{}{82, int64(82), float64(82), "82", " 82 "} {
			n, ok := Int(v)
			assert.True(t, ok)
			assert.Equal(t, 82, n)
		}
	})

	t.Run("Garbage Is Absent", func(t *testing.T) {
		_, ok := Int("not-a-number")
		assert.False(t, ok)
		_, ok = Int(nil)
		assert.False(t, ok)
	})
}

func TestList(t *testing.T) {
	t.Run("Interface Slice", func(t *testing.T) {
		items, ok := List([]interface{}{"a", "b"})
		assert.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("Typed Slice", func(t *testing.T) {
		items, ok := List([]sdkCoding{{Code: "x"}})
		assert.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("Non Slice", func(t *testing.T) {
		_, ok := List("scalar")
		assert.False(t, ok)
	})
}
