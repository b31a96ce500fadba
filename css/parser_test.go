package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"restyle/css"
)

func TestParser_Rule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.btn{color:red;background-color:blue;margin:0 auto;}`))
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if len(r.Selectors) != 1 || r.Selectors[0] != ".btn" {
		t.Errorf("selectors = %v", r.Selectors)
	}
	if len(r.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(r.Declarations))
	}
	if v, ok := r.Get("margin"); !ok || v != "0 auto" {
		t.Errorf("margin = %q", v)
	}
	if r.Declarations[1].Property != "background-color" {
		t.Errorf("declaration order not preserved: %v", r.Declarations)
	}
}

func TestParser_GroupedAndDescendantSelectors(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`.a span, .b span{color:black;}`))
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if got := strings.Join(rules[0].Selectors, "|"); got != ".a span|.b span" {
		t.Errorf("selectors = %q", got)
	}
	if len(sheet.RulesBySelector(".b span")) != 1 {
		t.Error("RulesBySelector did not find grouped selector")
	}
}

func TestParser_GroupsAndStatements(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import "a.css";.card{width:10px;}@media (min-width:640px){.card{width:100px;}}`), "test")
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
	if len(sheet.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(sheet.Items))
	}

	st := sheet.Items[0].Statement
	if st == nil || st.Name != "@import" || st.Prelude != `"a.css"` {
		t.Errorf("statement = %+v", st)
	}

	g := sheet.Items[2].Group
	if g == nil {
		t.Fatal("expected @media group")
	}
	if g.Name != "@media" || g.Prelude != "(min-width:640px)" {
		t.Errorf("group = %s %s", g.Name, g.Prelude)
	}
	if len(g.Items) != 1 || g.Items[0].Rule == nil {
		t.Fatalf("group items = %+v", g.Items)
	}

	cards := sheet.RulesBySelector(".card")
	if len(cards) != 2 {
		t.Fatalf("expected 2 .card rules, got %d", len(cards))
	}
	if v, _ := cards[1].Get("width"); v != "100px" {
		t.Errorf("nested width = %q", v)
	}
}

func TestParser_CustomProperties(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`:root{--space-1:4px;--space-2:var(--space-1);}.x{padding:calc(var(--space-2) * -1);}`))
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
	root := sheet.RulesBySelector(":root")
	if len(root) != 1 {
		t.Fatalf("expected :root rule, got %d", len(root))
	}
	d := root[0].Declarations
	if len(d) != 2 || !d[0].Custom || d[0].Property != "--space-1" || d[0].Value != "4px" {
		t.Errorf("custom properties = %+v", d)
	}
	if v, _ := sheet.RulesBySelector(".x")[0].Get("padding"); v != "calc(var(--space-2) * -1)" {
		t.Errorf("padding = %q", v)
	}
}

func TestParser_UnresolvedToken(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`.x{padding:$space$2;content:"$ok";}`))
	if len(sheet.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", sheet.Warnings)
	}
	if !strings.Contains(sheet.Warnings[0], "unresolved token reference in padding") {
		t.Errorf("warning = %q", sheet.Warnings[0])
	}
}

func TestParser_Empty(t *testing.T) {
	sheet := css.NewParser(nil).Parse(nil)
	if len(sheet.Items) != 0 || len(sheet.Warnings) != 0 {
		t.Errorf("expected empty stylesheet, got %+v", sheet)
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`@import "a.css";.a,.b{color:red;}@media print{.a{display:none;}}`))
	want := `@import "a.css";
.a, .b {
  color: red;
}

@media print {
  .a {
    display: none;
  }
}
`
	if got := sheet.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
