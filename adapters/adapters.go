// Package adapters provides the built-in validate/convert functions used in
// field adapter chains, plus factories for parameterized adapters such as
// numeric limits and choice restriction.
package adapters

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ariel-frischer/taskrig/field"
)

// ToInt converts a string token to int64.
var ToInt = field.Adapter{
	Name: "to_int",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		parsed, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, field.ValueErrorf("bad integer %q", text)
		}
		return parsed, nil
	},
}

// ToFloat converts a string token to float64.
var ToFloat = field.Adapter{
	Name: "to_float",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, field.ValueErrorf("bad number %q", text)
		}
		return parsed, nil
	},
}

// ToBool converts yes/no/true/false strings to bool. Bool input passes
// through unchanged so boolean options work without special casing.
var ToBool = field.Adapter{
	Name: "to_bool",
	Convert: func(value any) (any, error) {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(v) {
			case "yes", "true":
				return true, nil
			case "no", "false":
				return false, nil
			}
			return nil, field.ValueErrorf("bad boolean string %q", v)
		default:
			return nil, field.TypeErrorf("%v is not a string", value)
		}
	},
}

// ToCommaList splits a comma-separated token into trimmed strings.
var ToCommaList = field.Adapter{
	Name: "to_comma_list",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		parts := strings.Split(text, ",")
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		return parts, nil
	},
}

// B64Decode decodes a standard-base64 token to a UTF-8 string.
var B64Decode = field.Adapter{
	Name: "b64_decode",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		decoded, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, field.ValueErrorf("bad base64 string %q", text)
		}
		return string(decoded), nil
	},
}

// B64Encode encodes a string token as standard base64.
var B64Encode = field.Adapter{
	Name: "b64_encode",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		return base64.StdEncoding.EncodeToString([]byte(text)), nil
	},
}

// PathExists validates that the path names an existing filesystem object.
var PathExists = field.Adapter{
	Name: "path_exists",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		if _, err := os.Stat(text); err != nil {
			return nil, field.ValueErrorf("path %q does not exist", text)
		}
		return text, nil
	},
}

// PathIsFolder validates that the path names an existing directory.
var PathIsFolder = field.Adapter{
	Name: "path_is_folder",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		info, err := os.Stat(text)
		if err != nil || !info.IsDir() {
			return nil, field.ValueErrorf("%q is not a folder", text)
		}
		return text, nil
	},
}

// PathIsFile validates that the path names an existing regular file.
var PathIsFile = field.Adapter{
	Name: "path_is_file",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		info, err := os.Stat(text)
		if err != nil || info.IsDir() {
			return nil, field.ValueErrorf("%q is not a file", text)
		}
		return text, nil
	},
}

// PathToAbsolute converts a path token to an absolute path.
var PathToAbsolute = field.Adapter{
	Name: "path_to_absolute",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		absolute, err := filepath.Abs(text)
		if err != nil {
			return nil, field.ValueErrorf("cannot resolve path %q", text)
		}
		return absolute, nil
	},
}

// PathExpandUser expands a leading "~/" to the user's home directory.
var PathExpandUser = field.Adapter{
	Name: "path_expand_user",
	Convert: func(value any) (any, error) {
		text, ok := value.(string)
		if !ok {
			return nil, field.TypeErrorf("%v is not a string", value)
		}
		if strings.HasPrefix(text, "~/") {
			home, err := os.UserHomeDir()
			if err == nil {
				return filepath.Join(home, text[2:]), nil
			}
		}
		return text, nil
	},
}

// NumLimit builds an adapter that range-checks a previously converted number.
// Pass nil to leave a side unbounded.
func NumLimit(minimum, maximum *float64) field.Adapter {
	return field.Adapter{
		Name: "num_limit",
		Convert: func(value any) (any, error) {
			var number float64
			switch v := value.(type) {
			case int64:
				number = float64(v)
			case float64:
				number = v
			default:
				return nil, field.TypeErrorf("%v is not a number", value)
			}
			if minimum != nil && number < *minimum {
				return nil, field.ValueErrorf("%v is less than %v", value, *minimum)
			}
			if maximum != nil && number > *maximum {
				return nil, field.ValueErrorf("%v is greater than %v", value, *maximum)
			}
			return value, nil
		},
	}
}

// Choices builds an adapter that restricts the value to a fixed set. The
// comparison uses the value's string form, so it works before or after a
// conversion adapter.
func Choices(valid ...any) field.Adapter {
	rendered := make([]string, len(valid))
	for i, choice := range valid {
		rendered[i] = fmt.Sprint(choice)
	}
	return field.Adapter{
		Name: "choices",
		Convert: func(value any) (any, error) {
			text := fmt.Sprint(value)
			for _, choice := range rendered {
				if text == choice {
					return value, nil
				}
			}
			return nil, field.ValueErrorf("%v is not one of: %s",
				value, strings.Join(rendered, ", "))
		},
	}
}
