package field

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranrapjs/edgar-parser/pkg/value"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

func parse(t *testing.T, text string) *etree.Element {
	t.Helper()
	root, err := xmlnode.Parse(text)
	require.NoError(t, err)
	return root
}

func TestString(t *testing.T) {
	root := parse(t, `<r><name>Berkshire</name><blank></blank></r>`)

	s, err := String(root, "name")
	require.NoError(t, err)
	assert.Equal(t, "Berkshire", s)

	_, err = String(root, "blank")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = String(root, "missing")
	assert.EqualError(t, err, "missing not found")

	require.NotNil(t, OptString(root, "name"))
	assert.Nil(t, OptString(root, "blank"))
	assert.Nil(t, OptString(root, "missing"))
}

func TestChild(t *testing.T) {
	root := parse(t, `<r><coverPage/></r>`)
	c, err := Child(root, "coverPage")
	require.NoError(t, err)
	assert.Equal(t, "coverPage", c.Tag)

	_, err = Child(root, "signatureBlock")
	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "signatureBlock", missing.Tag)
}

func TestInts(t *testing.T) {
	root := parse(t, `<r>
		<n> 42 </n>
		<big>9999999999</big>
		<bad>x</bad>
		<list>1, 2,x,3</list>
		<list>4</list>
	</r>`)

	n, err := Int32(root, "n")
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)

	_, err = Int32(root, "big")
	assert.ErrorIs(t, err, ErrInvalidValue)

	big, err := Int64(root, "big")
	require.NoError(t, err)
	assert.Equal(t, int64(9999999999), big)

	_, err = Int64(root, "bad")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.EqualError(t, err, `failed to parse bad from "x": strconv.ParseInt: parsing "x": invalid syntax`)

	_, err = Int64(root, "missing")
	assert.ErrorIs(t, err, ErrMissingField)

	assert.Nil(t, OptInt32(root, "bad"))
	assert.Nil(t, OptInt32(root, "big"))
	require.NotNil(t, OptInt64(root, "big"))
	assert.Equal(t, int64(9999999999), *OptInt64(root, "big"))

	assert.Equal(t, []int32{1, 2, 3, 4}, Ints(root, "list"))
	assert.Nil(t, Ints(root, "missing"))
}

func TestBool(t *testing.T) {
	root := parse(t, `<r><a>Y</a><b>false</b><c>0</c><d>maybe</d></r>`)

	a, err := Bool(root, "a")
	require.NoError(t, err)
	assert.True(t, a)

	b, err := Bool(root, "b")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = Bool(root, "d")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, err, value.ErrInvalidFlag)

	require.NotNil(t, OptBool(root, "c"))
	assert.False(t, *OptBool(root, "c"))
	assert.Nil(t, OptBool(root, "d"))
	assert.Nil(t, OptBool(root, "missing"))
}

func TestValue(t *testing.T) {
	root := parse(t, `<r><price>12.5</price><shares>100</shares><code>A</code><none/></r>`)

	assert.Equal(t, value.NewFloat(12.5), *Value(root, "price"))
	assert.Equal(t, value.NewInt(100), *Value(root, "shares"))
	assert.Equal(t, value.NewString("A"), *Value(root, "code"))
	assert.Nil(t, Value(root, "none"))
}
