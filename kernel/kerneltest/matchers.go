package kerneltest

import (
	"fmt"
	"strings"

	"github.com/golang/mock/gomock"
)

// SnippetContains is a gomock matcher that matches source snippets submitted
// to a kernel by substring.
type SnippetContains struct {
	Substr string
}

var _ gomock.Matcher = SnippetContains{}

func (m SnippetContains) String() string {
	return fmt.Sprintf("snippet containing %q", m.Substr)
}

// Matches reports whether the submitted snippet contains the substring.
func (m SnippetContains) Matches(x interface{}) bool {
	code, ok := x.(string)
	if !ok {
		return false
	}
	return strings.Contains(code, m.Substr)
}
