package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveFunctionPrototype(t *testing.T) {
	tests := []struct {
		name string
		text string
		fn   string
		want string
	}{
		{
			"plain prototype",
			"#ifndef H\nint add(int a, int b);\nint sub(int a, int b);\n#endif\n",
			"add",
			"#ifndef H\nint sub(int a, int b);\n#endif\n",
		},
		{
			"qualified prototype",
			"extern unsigned long add(int a, int b);\nint keep(void);\n",
			"add",
			"int keep(void);\n",
		},
		{
			"multiline prototype",
			"int add(int a,\n        int b);\nint keep(void);\n",
			"add",
			"int keep(void);\n",
		},
		{
			"other functions untouched",
			"int add2(int a, int b);\n",
			"add",
			"int add2(int a, int b);\n",
		},
		{
			"definition untouched",
			"int add(int a, int b) { return a + b; }\n",
			"add",
			"int add(int a, int b) { return a + b; }\n",
		},
		{
			"no match",
			"/* nothing here */\n",
			"add",
			"/* nothing here */\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveFunctionPrototype(tt.text, tt.fn))
		})
	}
}
