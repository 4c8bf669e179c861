package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	got := Render(
		[]string{"label", "variant", "type"},
		[][]string{
			{"name", "Name", "string"},
			{"年龄", "Age"},
		},
	)
	want := "" +
		"label | variant | type\n" +
		"------+---------+-------\n" +
		"name  | Name    | string\n" +
		"年龄  | Age     | \n"
	assert.Equal(t, want, got)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "a\n-\n", Render([]string{"a"}, nil))
}
