package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		valid bool
	}{
		{"0.0.0", true},
		{"1.2.3", true},
		{"1.0.0-alpha.1", true},
		{"1.0.0+build.123", true},
		{"1.0.0-beta.1+build.456", true},
		{"", false},
		{"1.2", false},
		{"1.2.3.4", false},
		{"v1.2.3", false},
		{"1.2.3-", false},
		{"a.b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	md, err := Load([]byte(`
[project]
name = "demo"
version = "1.0.0"
authors = [{ name = "Jane Roe" }, { name = "John Doe" }]
`))
	require.NoError(t, err)
	assert.Equal(t, Metadata{Name: "demo", Author: "Jane Roe", Version: "1.0.0"}, md)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
	}{
		{"invalid toml", "[project"},
		{"missing name", "[project]\nversion = \"1.0.0\""},
		{"invalid version", "[project]\nname = \"demo\"\nversion = \"one\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedMetadata(t *testing.T) {
	t.Parallel()
	md, err := Load(projectTOML)
	require.NoError(t, err)
	assert.Equal(t, "treecmp", md.Name)
	assert.NotEmpty(t, md.Author)
	assert.NoError(t, Validate(md.Version))

	name, _, _ := Info()
	assert.Equal(t, md.Name, name)
	assert.Equal(t, md.Name, Name())
}
