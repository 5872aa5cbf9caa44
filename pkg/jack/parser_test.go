package jack_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hmny.dev/n2t-core/pkg/jack"
)

func TestParseMinimalClass(t *testing.T) {
	root, err := jack.NewParser(strings.NewReader("class Main {\n}\n")).Parse()
	require.NoError(t, err)

	assert.Equal(t, "class", root.Tag)
	require.Len(t, root.Children, 4) // class-kw, identifier, '{', '}'
	assert.Equal(t, "keyword", root.Children[0].Tag)
	assert.Equal(t, "class", root.Children[0].Text)
	assert.Equal(t, "identifier", root.Children[1].Tag)
	assert.Equal(t, "Main", root.Children[1].Text)
	assert.Equal(t, "symbol", root.Children[2].Tag)
}

func TestParseLetWithIndex(t *testing.T) {
	source := "class Main {\n" +
		"  function void main() {\n" +
		"    let a[i+1] = 2;\n" +
		"    return;\n" +
		"  }\n" +
		"}\n"

	root, err := jack.NewParser(strings.NewReader(source)).Parse()
	require.NoError(t, err)

	subroutine := root.Children[3] // class, identifier, '{', subroutineDec
	body := subroutine.Children[len(subroutine.Children)-1]
	require.Equal(t, "subroutineBody", body.Tag)

	statements := body.Children[1] // body.Children[0] is the '{' leaf
	require.Equal(t, "statements", statements.Tag)

	let := statements.Children[0]
	require.Equal(t, "letStatement", let.Tag)

	wantTags := []string{"keyword", "identifier", "symbol", "expression", "symbol", "symbol", "expression", "symbol"}
	require.Len(t, let.Children, len(wantTags))
	for i, tag := range wantTags {
		assert.Equal(t, tag, let.Children[i].Tag, "child %d", i)
	}

	assert.Equal(t, "a", let.Children[1].Text)
	assert.Equal(t, "[", let.Children[2].Text)
	assert.Equal(t, "]", let.Children[4].Text)
	assert.Equal(t, "=", let.Children[5].Text)
	assert.Equal(t, ";", let.Children[7].Text)

	indexExpr := let.Children[3]
	assert.Equal(t, "expression", indexExpr.Tag)
	require.Len(t, indexExpr.Children, 3) // term '+' term
	assert.Equal(t, "term", indexExpr.Children[0].Tag)
	assert.Equal(t, "symbol", indexExpr.Children[1].Tag)
	assert.Equal(t, "+", indexExpr.Children[1].Text)
	assert.Equal(t, "term", indexExpr.Children[2].Tag)
}

func TestParseDoStatementWithExternalCall(t *testing.T) {
	source := "class Main {\n" +
		"  function void main() {\n" +
		"    do Output.println();\n" +
		"    return;\n" +
		"  }\n" +
		"}\n"

	root, err := jack.NewParser(strings.NewReader(source)).Parse()
	require.NoError(t, err)

	subroutine := root.Children[3]
	body := subroutine.Children[len(subroutine.Children)-1]
	statements := body.Children[1]
	doStmt := statements.Children[0]

	require.Equal(t, "doStatement", doStmt.Tag)
	wantTags := []string{"keyword", "identifier", "symbol", "identifier", "symbol", "expressionList", "symbol", "symbol"}
	require.Len(t, doStmt.Children, len(wantTags))
	for i, tag := range wantTags {
		assert.Equal(t, tag, doStmt.Children[i].Tag, "child %d", i)
	}
	assert.Equal(t, "Output", doStmt.Children[1].Text)
	assert.Equal(t, ".", doStmt.Children[2].Text)
	assert.Equal(t, "println", doStmt.Children[3].Text)
}

func TestParseEmptyParameterListAndStatementsAlwaysExist(t *testing.T) {
	root, err := jack.NewParser(strings.NewReader("class Main {\n  function void main() {\n  }\n}\n")).Parse()
	require.NoError(t, err)

	subroutine := root.Children[3]
	paramList := subroutine.Children[4] // keyword, keyword, identifier, '(' leaf, then parameterList
	require.Equal(t, "parameterList", paramList.Tag)
	assert.Empty(t, paramList.Children)

	body := subroutine.Children[len(subroutine.Children)-1]
	statements := body.Children[1]
	assert.Equal(t, "statements", statements.Tag)
	assert.Empty(t, statements.Children)
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	_, err := jack.NewParser(strings.NewReader("class 123 {\n}\n")).Parse()
	require.Error(t, err)
}
