package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/taskrig/field"
)

func TestTextWithOptions(t *testing.T) {
	one := 1
	spec := Text("blocks",
		Description("text blocks"),
		Repeat(&one, nil),
		Choices("a", "b"),
	)

	assert.Equal(t, "blocks", spec.Name)
	assert.Equal(t, field.String, spec.Type)
	assert.Equal(t, "text blocks", spec.Description)
	assert.Equal(t, []string{"a", "b"}, spec.Choices)
	require.NotNil(t, spec.Repeat)
	assert.Equal(t, 1, *spec.Repeat.Min)
	assert.Nil(t, spec.Repeat.Max)
	assert.Empty(t, spec.Adapters)
}

func TestTypedConstructorsWireAdapters(t *testing.T) {
	tests := map[string]struct {
		spec        field.Spec
		wantType    field.Type
		wantAdapter string
	}{
		"integer":    {Integer("n"), field.Int, "to_int"},
		"number":     {Number("x"), field.Float, "to_float"},
		"boolean":    {Boolean("flag"), field.Bool, "to_bool"},
		"comma list": {CommaList("items"), field.StringList, "to_comma_list"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantType, tc.spec.Type)
			require.NotEmpty(t, tc.spec.Adapters)
			assert.Equal(t, tc.wantAdapter, tc.spec.Adapters[0].Name)
		})
	}
}

func TestDefault(t *testing.T) {
	spec := Integer("retries", Default(int64(3)))
	require.NotNil(t, spec.Default)
	assert.Equal(t, int64(3), spec.Default.Value)
}

func TestRepeatCount(t *testing.T) {
	spec := Text("pair", RepeatCount(2))
	require.NotNil(t, spec.Repeat)
	assert.Equal(t, 2, *spec.Repeat.Min)
	assert.Equal(t, 2, *spec.Repeat.Max)
}

func TestFolderAndPath(t *testing.T) {
	folder := Folder("dir", true)
	require.Len(t, folder.Adapters, 2)
	assert.Equal(t, "path_is_folder", folder.Adapters[0].Name)
	assert.Equal(t, "path_to_absolute", folder.Adapters[1].Name)

	path := Path("target", true, true)
	require.Len(t, path.Adapters, 2)
	assert.Equal(t, "path_to_absolute", path.Adapters[0].Name)
	assert.Equal(t, "path_exists", path.Adapters[1].Name)

	bare := Path("loose", false, false)
	assert.Empty(t, bare.Adapters)
}

func TestAdaptersAppendAfterStandardChain(t *testing.T) {
	extra := field.Adapter{Name: "extra", Convert: func(v any) (any, error) { return v, nil }}
	spec := Integer("n", Adapters(extra))
	require.Len(t, spec.Adapters, 2)
	assert.Equal(t, "to_int", spec.Adapters[0].Name)
	assert.Equal(t, "extra", spec.Adapters[1].Name)
}
