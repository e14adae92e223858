package langdetect

import (
	"testing"
)

func BenchmarkDetect(b *testing.B) {
	cases := map[string]string{
		"go":     "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}",
		"python": "def hello():\n    print(\"Hello, World!\")\n\nif __name__ == \"__main__\":\n    hello()",
		"json":   "{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\"\n}",
		"small":  "hello",
	}

	d := New()
	for name, code := range cases {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				d.Detect(code)
			}
		})
	}
}
