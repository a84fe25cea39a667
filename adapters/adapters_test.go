package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/taskrig/field"
)

func TestToInt(t *testing.T) {
	value, err := ToInt.Convert("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	_, err = ToInt.Convert("abc")
	assert.True(t, field.IsValueError(err))

	_, err = ToInt.Convert(true)
	assert.True(t, field.IsTypeError(err))
}

func TestToFloat(t *testing.T) {
	value, err := ToFloat.Convert("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)

	_, err = ToFloat.Convert("two point five")
	assert.True(t, field.IsValueError(err))
}

func TestToBool(t *testing.T) {
	tests := map[string]struct {
		input any
		want  bool
	}{
		"yes":           {"yes", true},
		"true":          {"true", true},
		"mixed case":    {"TRUE", true},
		"no":            {"no", false},
		"false":         {"false", false},
		"bool passthru": {true, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			value, err := ToBool.Convert(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}

	_, err := ToBool.Convert("maybe")
	assert.True(t, field.IsValueError(err))

	_, err = ToBool.Convert(12)
	assert.True(t, field.IsTypeError(err))
}

func TestToCommaList(t *testing.T) {
	value, err := ToCommaList.Convert("a, b ,c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, value)
}

func TestB64RoundTrip(t *testing.T) {
	encoded, err := B64Encode.Convert("hello")
	require.NoError(t, err)
	decoded, err := B64Decode.Convert(encoded)
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded)

	_, err = B64Decode.Convert("!!!not base64!!!")
	assert.True(t, field.IsValueError(err))
}

func TestPathAdapters(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "data.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	value, err := PathExists.Convert(filePath)
	require.NoError(t, err)
	assert.Equal(t, filePath, value)

	_, err = PathExists.Convert(filepath.Join(tmpDir, "missing"))
	assert.True(t, field.IsValueError(err))

	value, err = PathIsFolder.Convert(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, value)

	_, err = PathIsFolder.Convert(filePath)
	assert.True(t, field.IsValueError(err))

	value, err = PathIsFile.Convert(filePath)
	require.NoError(t, err)
	assert.Equal(t, filePath, value)

	_, err = PathIsFile.Convert(tmpDir)
	assert.True(t, field.IsValueError(err))
}

func TestPathToAbsolute(t *testing.T) {
	value, err := PathToAbsolute.Convert("data.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(value.(string)))
}

func TestPathExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	value, err := PathExpandUser.Convert("~/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.txt"), value)

	value, err = PathExpandUser.Convert("/etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, "/etc/hosts", value)
}

func TestNumLimit(t *testing.T) {
	low := 1.0
	high := 10.0
	limit := NumLimit(&low, &high)

	value, err := limit.Convert(int64(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), value)

	_, err = limit.Convert(int64(0))
	assert.True(t, field.IsValueError(err))

	_, err = limit.Convert(11.5)
	assert.True(t, field.IsValueError(err))

	_, err = limit.Convert("five")
	assert.True(t, field.IsTypeError(err))
}

func TestChoices(t *testing.T) {
	choose := Choices("red", "green", int64(3))

	value, err := choose.Convert("red")
	require.NoError(t, err)
	assert.Equal(t, "red", value)

	value, err = choose.Convert(int64(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)

	_, err = choose.Convert("blue")
	assert.True(t, field.IsValueError(err))
}
