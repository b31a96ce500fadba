package stringify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restyle/rewrite"
	"restyle/stringify"
)

type B = rewrite.Block

func TestStringify_Plain(t *testing.T) {
	style := B{
		{Name: ".btn", Value: B{
			{Name: "color", Value: "red"},
			{Name: "backgroundColor", Value: "blue"},
			{Name: "&:hover", Value: B{{Name: "color", Value: "white"}}},
			{Name: "marginTop", Value: "1px"},
		}},
	}

	css, err := stringify.Stringify(style, nil)
	require.NoError(t, err)
	assert.Equal(t, ".btn{color:red;background-color:blue;}.btn:hover{color:white;}.btn{margin-top:1px;}", css)
}

func TestStringify_Conditions(t *testing.T) {
	style := B{
		{Name: "@import", Value: []any{`"a.css"`, `"b.css"`}},
		{Name: ".a, .b", Value: B{
			{Name: "@media print", Value: B{
				{Name: "display", Value: "none"},
				{Name: "span", Value: B{{Name: "color", Value: "black"}}},
			}},
		}},
	}

	css, err := stringify.Stringify(style, nil)
	require.NoError(t, err)
	assert.Equal(t, `@import "a.css";@import "b.css";@media print{.a,.b{display:none;}.a span,.b span{color:black;}}`, css)
}

func TestStringify_WithRewriter(t *testing.T) {
	cfg := &rewrite.Config{
		Media:    map[string]string{"bp1": "(width >= 640px)"},
		ThemeMap: map[string]string{"padding": "space"},
		Utils: map[string]rewrite.Utility{
			"mx": rewrite.UtilityFunc(func(_ *rewrite.Config, v any) (rewrite.Block, error) {
				return B{{Name: "marginLeft", Value: v}, {Name: "marginRight", Value: v}}, nil
			}),
		},
	}
	style := B{
		{Name: ".card", Value: B{
			{Name: "padding", Value: "$2"},
			{Name: "mx", Value: 4},
			{Name: "appearance", Value: "none"},
			{Name: "content", Value: "hi"},
			{Name: "$gap", Value: "8px"},
			{Name: "@bp1", Value: B{{Name: "width", Value: 100}}},
		}},
	}

	css, err := stringify.Stringify(style, rewrite.New(cfg).Func())
	require.NoError(t, err)
	assert.Equal(t, ".card{padding:var(--space-2);margin-left:4px;margin-right:4px;"+
		"-webkit-appearance:none;appearance:none;content:\"hi\";-gap:8px;}"+
		"@media (min-width:640px){.card{width:100px;}}", css)
}

func TestStringify_ReplacerNotCalledForOwnPair(t *testing.T) {
	calls := 0
	replace := func(name string, value any) (rewrite.Block, error) {
		calls++
		if name == "x" {
			return B{{Name: "x", Value: value}, {Name: "y", Value: value}}, nil
		}
		return nil, nil
	}

	css, err := stringify.Stringify(B{{Name: "x", Value: 1}}, replace)
	require.NoError(t, err)
	assert.Equal(t, "x:1;y:1;", css)
	assert.Equal(t, 2, calls, "replacer runs for x and y but not for x inside its own replacement")
}

func TestStringify_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := stringify.Stringify(B{{Name: ".a", Value: B{{Name: "bad", Value: 1}}}}, func(name string, _ any) (rewrite.Block, error) {
		if name == "bad" {
			return nil, boom
		}
		return nil, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{".a", ".b"}, stringify.Split(".a , .b"))
	assert.Equal(t, []string{":is(.a, .b) span", ".c"}, stringify.Split(":is(.a, .b) span,.c"))
	assert.Equal(t, []string{"div"}, stringify.Split("div"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, []string{".a"}, stringify.Resolve(nil, []string{".a"}))
	assert.Equal(t, []string{".a .b", ".a:hover"}, stringify.Resolve([]string{".a"}, []string{".b", "&:hover"}))
	assert.Equal(t, []string{".x .a", ".y .a"}, stringify.Resolve([]string{".x", ".y"}, []string{".a"}))
	assert.Equal(t, []string{":is(.p .q) + :is(.p .q)"}, stringify.Resolve([]string{".p .q"}, []string{"& + &"}))
	assert.Equal(t, []string{".p.q"}, stringify.Resolve([]string{".p"}, []string{"&.q"}))
}
