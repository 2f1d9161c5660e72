package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulePath(t *testing.T) {
	p, err := DecodeModulePath(mustParse(t, `"app>lib-a>lib-b"`))
	require.NoError(t, err)
	assert.Equal(t, ModulePath{"app", "lib-a", "lib-b"}, p)
	assert.Equal(t, "app>lib-a>lib-b", p.String())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `"app>lib-a>lib-b"`, string(b))

	var back ModulePath
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}

func TestModulePathSingleName(t *testing.T) {
	p, err := DecodeModulePath(mustParse(t, `"lodash"`))
	require.NoError(t, err)
	assert.Equal(t, ModulePath{"lodash"}, p)
}

func TestModulePaths(t *testing.T) {
	ps, err := DecodeModulePaths(mustParse(t, `["webpack>lodash", "app>lib-a>lib-b>lodash"]`))
	require.NoError(t, err)
	assert.Equal(t, []ModulePath{
		{"webpack", "lodash"},
		{"app", "lib-a", "lib-b", "lodash"},
	}, ps)

	b, err := json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `["webpack>lodash", "app>lib-a>lib-b>lodash"]`, string(b))
}

func TestModulePathsBadElement(t *testing.T) {
	_, err := DecodeModulePaths(mustParse(t, `["a>b", false]`))
	requirePathError(t, err, "[1]", ErrInvalidType)
}

func TestTimestamp(t *testing.T) {
	ts, err := Timestamp(mustParse(t, `"2020-03-11T22:25:26.000Z"`))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2020, 3, 11, 22, 25, 26, 0, time.UTC)))

	ts, err = Timestamp(mustParse(t, `"2020-03-11T23:25:26+01:00"`))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2020, 3, 11, 22, 25, 26, 0, time.UTC)))

	_, err = Timestamp(mustParse(t, `"11/03/2020"`))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Timestamp(mustParse(t, `null`))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestOptionalTimestamp(t *testing.T) {
	ts, err := OptionalTimestamp(mustParse(t, `null`))
	require.NoError(t, err)
	assert.Nil(t, ts)

	ts, err = OptionalTimestamp(mustParse(t, `"2020-03-11T22:31:47.000Z"`))
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, 2020, ts.Year())
}
