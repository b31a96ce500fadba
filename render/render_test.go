package render

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"restyle/config"
	"restyle/rewrite"
)

func TestDecode(t *testing.T) {
	style, err := Decode([]byte(`
"@import": ['"a.css"', '"b.css"']
.b:
  zIndex: 2
  opacity: 0.5
  padding: $2
  hidden: true
  "&:hover":
    color: red
.a:
  color: blue
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"@import", ".b", ".a"}, style.Names())

	imports, _ := style.Get("@import")
	assert.Equal(t, []any{`"a.css"`, `"b.css"`}, imports)

	b, _ := style.Get(".b")
	assert.Equal(t, rewrite.Block{
		{Name: "zIndex", Value: 2},
		{Name: "opacity", Value: 0.5},
		{Name: "padding", Value: "$2"},
		{Name: "hidden", Value: true},
		{Name: "&:hover", Value: rewrite.Block{{Name: "color", Value: "red"}}},
	}, b)
}

func TestDecode_Aliases(t *testing.T) {
	style, err := Decode([]byte(`
base: &base
  color: red
.x: *base
`))
	require.NoError(t, err)
	x, _ := style.Get(".x")
	assert.Equal(t, rewrite.Block{{Name: "color", Value: "red"}}, x)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("- a\n- b\n"))
	assert.ErrorContains(t, err, "must be a mapping")

	_, err = Decode([]byte("? [a, b]\n: c\n"))
	assert.ErrorContains(t, err, "name must be a scalar")

	_, err = Decode([]byte("a: [\n"))
	assert.Error(t, err)

	style, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, style)
}

func styling() *config.StylingConfig {
	return &config.StylingConfig{
		Media:        map[string]string{"bp1": "(width >= 640px)"},
		Theme:        map[string]map[string]string{"space": {"1": "4px", "2": "8px"}},
		EmitTheme:    true,
		RootSelector: ":root",
		Utilities: map[string]config.Properties{
			"stack": {{Name: "display", Template: "flex"}, {Name: "gap", Template: "{{ . }}"}},
		},
		Builtins: map[string]string{"mx": "marginX"},
	}
}

func TestRenderer_Render(t *testing.T) {
	r, err := New(styling(), zap.NewNop())
	require.NoError(t, err)

	out, err := r.Render([]byte(`
.card:
  stack: $1
  mx: 4
  paddingTop: $2
  "@bp1":
    width: 100
`))
	require.NoError(t, err)
	assert.Equal(t, ":root{--space-1:4px;--space-2:8px;}"+
		".card{display:flex;gap:var(--space-1);margin-left:4px;margin-right:4px;padding-top:var(--space-2);}"+
		"@media (min-width:640px){.card{width:100px;}}", string(out))

	sheet, err := r.Verify(out, "test")
	require.NoError(t, err)
	assert.Len(t, sheet.Rules(), 3)
}

func TestRenderer_RenderIsRepeatable(t *testing.T) {
	r, err := New(styling(), nil)
	require.NoError(t, err)

	doc := []byte(".a:\n  mx: 1\n")
	first, err := r.Render(doc)
	require.NoError(t, err)
	second, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second, "memoization must not leak between documents")
}

func TestRenderer_VerifyFails(t *testing.T) {
	cfg := styling()
	cfg.EmitTheme = false
	r, err := New(cfg, nil)
	require.NoError(t, err)

	out, err := r.Render([]byte(".a:\n  color: $$x\n"))
	require.NoError(t, err)
	_, err = r.Verify([]byte(".a{color:$x;}"), "bad")
	assert.ErrorContains(t, err, "1 problem")
	assert.NotEmpty(t, out)
}

func TestNew_Errors(t *testing.T) {
	cfg := styling()
	cfg.Builtins["my"] = "marginQ"
	_, err := New(cfg, nil)
	assert.ErrorContains(t, err, "marginQ")
}

func TestNew_DefaultThemeMap(t *testing.T) {
	cfg := styling()
	cfg.EmitTheme = false
	r, err := New(cfg, nil)
	require.NoError(t, err)

	out, err := r.Render([]byte(".a:\n  marginTop: $1\n"))
	require.NoError(t, err)
	assert.Equal(t, ".a{margin-top:var(--space-1);}", string(out))
}

func newJob(t *testing.T, src, dst string) *job {
	t.Helper()
	cfg := styling()
	cfg.EmitTheme = false
	r, err := New(cfg, nil)
	require.NoError(t, err)
	return &job{src: src, dst: dst, verify: true, renderer: r, log: zap.NewNop()}
}

func TestJob_Run(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.yaml")
	dst := filepath.Join(dir, "out", "style.css")
	require.NoError(t, os.WriteFile(src, []byte(".a:\n  size: 0\n  mx: 2\n"), 0644))

	j := newJob(t, src, dst)
	require.NoError(t, j.run())

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, ".a{size:0;margin-left:2px;margin-right:2px;}", string(out))
}

func TestJob_Pretty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.yaml")
	dst := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(src, []byte(".a:\n  color: red\n"), 0644))

	j := newJob(t, src, dst)
	j.pretty = true
	require.NoError(t, j.run())

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: red;\n}\n", string(out))
}

func TestJob_CodePage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.yaml")
	dst := filepath.Join(dir, "style.css")

	doc, err := charmap.Windows1251.NewEncoder().String(".a:\n  content: привет\n")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, []byte(doc), 0644))

	j := newJob(t, src, dst)
	j.codePage = charmap.Windows1251
	require.NoError(t, j.run())

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `.a{content:"привет";}`, string(out))
}

func TestJob_Watch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.yaml")
	dst := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(src, []byte(".a:\n  width: 1\n"), 0644))

	j := newJob(t, src, dst)
	require.NoError(t, j.run())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.watch(ctx) }()

	// give watcher time to start
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(src, []byte(".a:\n  width: 2\n"), 0644))

	assert.Eventually(t, func() bool {
		out, err := os.ReadFile(dst)
		return err == nil && string(out) == ".a{width:2px;}"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestJob_Report(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.yaml")
	dst := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(src, []byte(".a:\n  width: 1\n"), 0644))

	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	require.NoError(t, err)

	j := newJob(t, src, dst)
	j.rpt = rpt
	require.NoError(t, j.run())
	require.NoError(t, rpt.Close())

	arc, err := zip.OpenReader(rpt.Name())
	require.NoError(t, err)
	defer arc.Close()

	var names []string
	for _, f := range arc.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"MANIFEST", "input/style.yaml", "input/style.yaml.tree", "output/style.css"}, names)
}
