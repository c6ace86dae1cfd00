package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec   string
		kind   Kind
		wantOK bool
	}{
		{"camelCase", KindCamel, true},
		{"SNAKE_CASE", KindSnake, true},
		{"f_*", KindPrefix, true},
		{"", KindNone, true},
		{"kebab-case", KindNone, false},
		{"*", KindNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, ok := Parse(tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.kind, c.Kind())
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want bool
	}{
		{"calculateAverage", "camelCase", true},
		{"f_calculateAverage", "camelCase", false},
		{"CalculateAverage", "camelCase", false},
		{"value2", "camelCase", true},
		{"MAX_LOOKBACK", "SNAKE_CASE", true},
		{"maxLookback", "SNAKE_CASE", false},
		{"_MAX", "SNAKE_CASE", false},
		{"f_calc", "f_*", true},
		{"calc", "f_*", false},
		{"f_", "f_*", false},
		{"anything", "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.name, tt.spec))
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"f_calculateAverage", "camelCase", "calculateAverage"},
		{"f_calculate_average", "camelCase", "calculateAverage"},
		{"i_length", "camelCase", "length"},
		{"v_total_sum", "camelCase", "totalSum"},
		{"MY_VAR", "camelCase", "myVar"},
		{"MyValue", "camelCase", "myValue"},
		{"my__double", "camelCase", "myDouble"},
		{"calculateAverage", "camelCase", "calculateAverage"},
		{"2fast", "camelCase", "2fast"},
		{"c_max_lookback", "SNAKE_CASE", "MAX_LOOKBACK"},
		{"maxLookback", "SNAKE_CASE", "MAXLOOKBACK"},
		{"MAX", "SNAKE_CASE", "MAX"},
		{"calc", "f_*", "f_calc"},
		{"f_calc", "f_*", "f_calc"},
		{"length", "i_*", "i_length"},
		{"whatever", "", "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.name, tt.spec))
		})
	}
}

func TestTransform_Idempotent(t *testing.T) {
	names := []string{
		"f_calculateAverage", "MY_VAR", "c_max", "_x", "x_", "a_b_c", "ABC", "abc",
		"f_", "c_", "v_2", "__", "9lives", "mixed_Case_NAME", "already",
	}
	specs := []string{"camelCase", "SNAKE_CASE", "f_*", "c_*", ""}

	for _, spec := range specs {
		for _, name := range names {
			once := Transform(name, spec)
			twice := Transform(once, spec)
			assert.Equal(t, once, twice, "name %q spec %q", name, spec)
		}
	}
}

func TestTransform_ResultConformsWhenChanged(t *testing.T) {
	names := []string{"f_calculateAverage", "MY_VAR", "c_max", "a_b_c", "Value"}
	specs := []string{"camelCase", "SNAKE_CASE", "f_*"}

	for _, spec := range specs {
		for _, name := range names {
			got := Transform(name, spec)
			if got != name {
				assert.True(t, Check(got, spec), "%q -> %q should conform to %s", name, got, spec)
			}
		}
	}
}
